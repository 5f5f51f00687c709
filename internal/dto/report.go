package dto

// CreateReportRequest queues an asynchronous export job. From/To bound the
// reported period as "2006-01-02" dates; both optional for menu reports.
type CreateReportRequest struct {
	Type   string `json:"type" validate:"required,oneof=sales menu"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	From   string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReportDownloadResponse carries the signed download token for a finished
// report.
type ReportDownloadResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

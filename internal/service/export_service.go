package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/models"
	"github.com/mesa-admin/resto-bo-api/pkg/export"
	"github.com/mesa-admin/resto-bo-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService builds report datasets and persists rendered files.
type ExportService struct {
	sales   saleRepository
	menu    menuRepository
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(sales saleRepository, menu menuRepository, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		sales:   sales,
		menu:    menu,
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate builds the dataset for the job and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	signedURL := fmt.Sprintf("%s/reports/download/%s", prefix, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	restaurantPart := sanitizeFilename(job.Params.RestaurantID)
	return fmt.Sprintf("%s_%s_%s.%s", strings.ToLower(string(job.Type)), restaurantPart, timestamp, job.Params.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeSales:
		return s.buildSalesDataset(ctx, job.Params)
	case models.ReportTypeMenu:
		return s.buildMenuDataset(ctx, job.Params)
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %s", job.Type)
	}
}

func (s *ExportService) buildSalesDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	from, to, err := reportPeriod(params)
	if err != nil {
		return export.Dataset{}, "", err
	}
	summaries, err := s.sales.DailySummary(ctx, params.RestaurantID, from, to)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(summaries))
	for _, row := range summaries {
		rows = append(rows, map[string]string{
			"Date":        row.Date,
			"Sales":       fmt.Sprintf("%d", row.SaleCount),
			"Total Cents": fmt.Sprintf("%d", row.TotalCents),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Date", "Sales", "Total Cents"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Sales Report %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return dataset, title, nil
}

func (s *ExportService) buildMenuDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	items, _, err := s.menu.List(ctx, models.MenuFilter{
		RestaurantID: params.RestaurantID,
		Page:         1,
		PageSize:     500,
		SortBy:       "category",
		SortOrder:    "asc",
	})
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Category":    item.Category,
			"Name":        item.Name,
			"Price Cents": fmt.Sprintf("%d", item.PriceCents),
			"Available":   fmt.Sprintf("%t", item.Available),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Category", "Name", "Price Cents", "Available"},
		Rows:    rows,
	}
	return dataset, "Menu Report", nil
}

// reportPeriod resolves the job's From/To dates, defaulting to the trailing
// 30 days.
func reportPeriod(params models.ReportJobParams) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	if params.To != "" {
		parsed, err := time.Parse("2006-01-02", params.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	from := to.AddDate(0, 0, -30)
	if params.From != "" {
		parsed, err := time.Parse("2006-01-02", params.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
		}
		from = parsed
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must precede to")
	}
	return from, to, nil
}

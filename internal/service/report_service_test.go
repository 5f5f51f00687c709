package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/jobs"
)

type mockReportStore struct {
	jobs     map[string]*models.ReportJob
	statuses []models.ReportStatus
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{jobs: make(map[string]*models.ReportJob)}
}

func (m *mockReportStore) Create(ctx context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = "job-1"
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockReportStore) FindByID(ctx context.Context, id string) (*models.ReportJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (m *mockReportStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.ReportJob, error) {
	var out []models.ReportJob
	for _, job := range m.jobs {
		if job.CreatedBy == userID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockReportStore) ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error) {
	var out []models.ReportJob
	for _, job := range m.jobs {
		if job.Status == models.ReportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockReportStore) UpdateStatus(ctx context.Context, id string, status models.ReportStatus, resultURL, errorMessage *string) error {
	job, ok := m.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	job.Status = status
	job.ResultURL = resultURL
	job.ErrorMessage = errorMessage
	m.statuses = append(m.statuses, status)
	return nil
}

type mockDispatcher struct {
	enqueued []jobs.Job
	err      error
}

func (m *mockDispatcher) Enqueue(job jobs.Job) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, job)
	return nil
}

type mockGenerator struct {
	result *ExportResult
	err    error
}

func (m *mockGenerator) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	return m.result, m.err
}

func TestReportServiceCreateJob(t *testing.T) {
	store := newMockReportStore()
	dispatcher := &mockDispatcher{}
	svc := NewReportService(store, dispatcher, nil, validator.New(), zap.NewNop(), ReportServiceConfig{})

	job, err := svc.CreateJob(context.Background(), "r1", "u1", dto.CreateReportRequest{
		Type:   "sales",
		Format: "csv",
		From:   "2026-08-01",
		To:     "2026-08-28",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, job.Status)
	assert.Equal(t, "r1", job.Params.RestaurantID)
	require.Len(t, dispatcher.enqueued, 1)
	assert.Equal(t, job.ID, dispatcher.enqueued[0].ID)
}

func TestReportServiceCreateJobEnqueueFailureMarksFailed(t *testing.T) {
	store := newMockReportStore()
	dispatcher := &mockDispatcher{err: errors.New("queue stopped")}
	svc := NewReportService(store, dispatcher, nil, validator.New(), zap.NewNop(), ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), "r1", "u1", dto.CreateReportRequest{Type: "menu", Format: "pdf"})
	require.Error(t, err)
	require.Len(t, store.statuses, 1)
	assert.Equal(t, models.ReportStatusFailed, store.statuses[0])
}

func TestReportServiceGetStatusEnforcesOwnership(t *testing.T) {
	store := newMockReportStore()
	store.jobs["job-1"] = &models.ReportJob{ID: "job-1", CreatedBy: "u1", Status: models.ReportStatusQueued}
	svc := NewReportService(store, &mockDispatcher{}, nil, validator.New(), zap.NewNop(), ReportServiceConfig{})

	_, err := svc.GetStatus(context.Background(), "job-1", "u2", models.RoleManager)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)

	job, err := svc.GetStatus(context.Background(), "job-1", "u2", models.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
}

func TestReportWorkerFinishesJob(t *testing.T) {
	store := newMockReportStore()
	store.jobs["job-1"] = &models.ReportJob{ID: "job-1", Type: models.ReportTypeSales, Status: models.ReportStatusQueued}
	generator := &mockGenerator{result: &ExportResult{URL: "/api/v1/reports/download/token"}}
	worker := NewReportWorker(store, generator, 3, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFinished, store.jobs["job-1"].Status)
	require.NotNil(t, store.jobs["job-1"].ResultURL)
	assert.Equal(t, "/api/v1/reports/download/token", *store.jobs["job-1"].ResultURL)
}

func TestReportWorkerRequeuesThenFails(t *testing.T) {
	store := newMockReportStore()
	store.jobs["job-1"] = &models.ReportJob{ID: "job-1", Type: models.ReportTypeSales, Status: models.ReportStatusQueued}
	generator := &mockGenerator{err: errors.New("render failed")}
	worker := NewReportWorker(store, generator, 2, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 0})
	require.Error(t, err)
	assert.Equal(t, models.ReportStatusQueued, store.jobs["job-1"].Status)

	err = worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 2})
	require.Error(t, err)
	assert.Equal(t, models.ReportStatusFailed, store.jobs["job-1"].Status)
}

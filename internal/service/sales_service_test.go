package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
)

type mockSaleRepo struct {
	created   *models.Sale
	sales     []models.Sale
	summaries []models.DailySalesSummary
	topItems  []models.TopMenuItem
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *models.Sale) error {
	sale.ID = "new-sale"
	m.created = sale
	return nil
}

func (m *mockSaleRepo) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	for i := range m.sales {
		if m.sales[i].ID == id {
			sale := m.sales[i]
			return &sale, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSaleRepo) List(ctx context.Context, filter models.SaleFilter) ([]models.Sale, int, error) {
	return m.sales, len(m.sales), nil
}

func (m *mockSaleRepo) DailySummary(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailySalesSummary, error) {
	return m.summaries, nil
}

func (m *mockSaleRepo) TopItems(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.TopMenuItem, error) {
	return m.topItems, nil
}

type mockAuditRecorder struct {
	logs []*models.AuditLog
}

func (m *mockAuditRecorder) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func newSalesService(repo *mockSaleRepo, menu *mockMenuRepo, audit *mockAuditRecorder) *SalesService {
	return NewSalesService(repo, menu, audit, nil, validator.New(), zap.NewNop())
}

func TestSalesServiceRecordSnapshotsPrices(t *testing.T) {
	menu := &mockMenuRepo{items: []models.MenuItem{
		{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: true},
		{ID: "m2", RestaurantID: "r1", Name: "Agua", PriceCents: 300, Available: true},
	}}
	repo := &mockSaleRepo{}
	audit := &mockAuditRecorder{}
	svc := newSalesService(repo, menu, audit)

	sale, err := svc.Record(context.Background(), "r1", "u1", dto.RecordSaleRequest{
		Channel: "DINE_IN",
		Items: []dto.SaleItemPayload{
			{MenuItemID: "m1", Quantity: 2},
			{MenuItemID: "m2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2*950+300), sale.TotalCents)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, int64(950), sale.Items[0].UnitPriceCents)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionSaleRecord, audit.logs[0].Action)
}

func TestSalesServiceRecordRejectsForeignMenuItem(t *testing.T) {
	menu := &mockMenuRepo{items: []models.MenuItem{
		{ID: "m1", RestaurantID: "other", Name: "Tacos", PriceCents: 950, Available: true},
	}}
	svc := newSalesService(&mockSaleRepo{}, menu, nil)

	_, err := svc.Record(context.Background(), "r1", "u1", dto.RecordSaleRequest{
		Channel: "DINE_IN",
		Items:   []dto.SaleItemPayload{{MenuItemID: "m1", Quantity: 1}},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSalesServiceRecordRejectsUnavailableItem(t *testing.T) {
	menu := &mockMenuRepo{items: []models.MenuItem{
		{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: false},
	}}
	svc := newSalesService(&mockSaleRepo{}, menu, nil)

	_, err := svc.Record(context.Background(), "r1", "u1", dto.RecordSaleRequest{
		Channel: "TAKEAWAY",
		Items:   []dto.SaleItemPayload{{MenuItemID: "m1", Quantity: 1}},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSalesServiceRecordRejectsFutureSoldAt(t *testing.T) {
	menu := &mockMenuRepo{items: []models.MenuItem{
		{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: true},
	}}
	svc := newSalesService(&mockSaleRepo{}, menu, nil)

	future := time.Now().Add(2 * time.Hour)
	_, err := svc.Record(context.Background(), "r1", "u1", dto.RecordSaleRequest{
		Channel: "DINE_IN",
		SoldAt:  &future,
		Items:   []dto.SaleItemPayload{{MenuItemID: "m1", Quantity: 1}},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSalesServiceRejectsBadPeriod(t *testing.T) {
	svc := newSalesService(&mockSaleRepo{}, &mockMenuRepo{}, nil)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := svc.DailySummary(context.Background(), "r1", &from, &to)
	require.Error(t, err)

	farBack := from.AddDate(0, -6, 0)
	_, err = svc.DailySummary(context.Background(), "r1", &farBack, &from)
	require.Error(t, err)
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
)

type saleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, filter models.SaleFilter) ([]models.Sale, int, error)
	DailySummary(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailySalesSummary, error)
	TopItems(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.TopMenuItem, error)
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SalesService records completed sales and serves sales analytics. Line item
// prices snapshot the menu at record time.
type SalesService struct {
	repo      saleRepository
	menu      menuRepository
	audit     auditRecorder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSalesService constructs a SalesService.
func NewSalesService(repo saleRepository, menu menuRepository, audit auditRecorder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SalesService{repo: repo, menu: menu, audit: audit, cache: cache, validator: validate, logger: logger}
}

// Record stores a sale. Every line item must reference an available menu item
// of the same restaurant; totals are computed server-side.
func (s *SalesService) Record(ctx context.Context, restaurantID, userID string, req dto.RecordSaleRequest) (*models.Sale, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sale payload")
	}
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}

	soldAt := time.Now().UTC()
	if req.SoldAt != nil {
		soldAt = req.SoldAt.UTC()
		if soldAt.After(time.Now().UTC()) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "sold_at cannot be in the future")
		}
	}

	var total int64
	items := make([]models.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItem, err := s.menu.FindByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("menu item %s not found", line.MenuItemID))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load menu item")
		}
		if menuItem.RestaurantID != restaurantID {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("menu item %s belongs to another restaurant", line.MenuItemID))
		}
		if !menuItem.Available {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("menu item %q is not available", menuItem.Name))
		}
		items = append(items, models.SaleItem{
			MenuItemID:     menuItem.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: menuItem.PriceCents,
		})
		total += menuItem.PriceCents * int64(line.Quantity)
	}

	sale := &models.Sale{
		RestaurantID: restaurantID,
		RecordedBy:   userID,
		Channel:      models.SaleChannel(req.Channel),
		TotalCents:   total,
		Note:         req.Note,
		SoldAt:       soldAt,
		Items:        items,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record sale")
	}

	s.recordAudit(ctx, userID, sale)
	s.invalidateDashboard(ctx, restaurantID)
	return sale, nil
}

// Get loads one sale with its line items.
func (s *SalesService) Get(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sale not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sale")
	}
	return sale, nil
}

// List returns sales for the filter plus pagination metadata.
func (s *SalesService) List(ctx context.Context, filter models.SaleFilter) ([]models.Sale, *models.Pagination, error) {
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sales")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return sales, pagination, nil
}

// DailySummary aggregates per-day totals. The range defaults to the trailing
// seven days when unset and may span at most 92 days.
func (s *SalesService) DailySummary(ctx context.Context, restaurantID string, from, to *time.Time) ([]models.DailySalesSummary, error) {
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}
	start, end, err := resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}
	summaries, err := s.repo.DailySummary(ctx, restaurantID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sales summary")
	}
	return summaries, nil
}

// TopItems ranks menu items by units sold within the period.
func (s *SalesService) TopItems(ctx context.Context, restaurantID string, from, to *time.Time, limit int) ([]models.TopMenuItem, error) {
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	start, end, err := resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.TopItems(ctx, restaurantID, start, end, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load top items")
	}
	return items, nil
}

func (s *SalesService) recordAudit(ctx context.Context, userID string, sale *models.Sale) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"total_cents": sale.TotalCents,
		"channel":     sale.Channel,
		"items":       len(sale.Items),
	})
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionSaleRecord,
		Resource:   "sale",
		ResourceID: &sale.ID,
		NewValues:  payload,
	}); err != nil {
		s.logger.Warn("failed to record sale audit log", zap.Error(err))
	}
}

func (s *SalesService) invalidateDashboard(ctx context.Context, restaurantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dashboard:"+restaurantID+"*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}

func resolvePeriod(from, to *time.Time) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if to != nil {
		end = to.UTC()
	}
	start := end.AddDate(0, 0, -7)
	if from != nil {
		start = from.UTC()
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from must precede to")
	}
	if end.Sub(start) > 92*24*time.Hour {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "period may span at most 92 days")
	}
	return start, end, nil
}

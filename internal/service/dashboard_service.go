package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/schedule"
)

type dashboardShiftRepository interface {
	ListByRestaurantDay(ctx context.Context, restaurantID, dayOfWeek string) ([]models.StaffShift, error)
}

// DashboardServiceConfig governs dashboard exposure and cache tuning.
type DashboardServiceConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// DashboardService composes the back-office landing page: today's and this
// week's sales, top sellers, today's roster, and schedule health. The whole
// payload is cached as one unit and invalidated by the writing services.
type DashboardService struct {
	sales    saleRepository
	shifts   dashboardShiftRepository
	schedule *ScheduleService
	cache    *CacheService
	logger   *zap.Logger
	cfg      DashboardServiceConfig
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(sales saleRepository, shifts dashboardShiftRepository, scheduleSvc *ScheduleService, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		sales:    sales,
		shifts:   shifts,
		schedule: scheduleSvc,
		cache:    cache,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Enabled reports whether the dashboard endpoint is switched on.
func (s *DashboardService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Overview assembles the dashboard payload, serving from cache when fresh.
func (s *DashboardService) Overview(ctx context.Context, restaurantID string) (*dto.DashboardPayload, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "dashboard is disabled")
	}
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}

	key := "dashboard:" + restaurantID
	var cached dto.DashboardPayload
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	payload, err := s.build(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return payload, nil
}

func (s *DashboardService) build(ctx context.Context, restaurantID string) (*dto.DashboardPayload, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfWeek := startOfDay.AddDate(0, 0, -int((now.Weekday()+6)%7))

	todaySummaries, err := s.sales.DailySummary(ctx, restaurantID, startOfDay, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load today's sales")
	}
	salesToday := models.DailySalesSummary{Date: startOfDay.Format("2006-01-02")}
	if len(todaySummaries) > 0 {
		salesToday = todaySummaries[0]
	}

	salesWeek, err := s.sales.DailySummary(ctx, restaurantID, startOfWeek, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly sales")
	}

	topItems, err := s.sales.TopItems(ctx, restaurantID, startOfWeek, now, 5)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load top items")
	}

	today := weekdayToDay(now.Weekday())
	shiftsToday, err := s.shifts.ListByRestaurantDay(ctx, restaurantID, today.String())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load today's shifts")
	}

	health, err := s.schedule.Health(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardPayload{
		RestaurantID:   restaurantID,
		GeneratedAt:    now.Format(time.RFC3339),
		SalesToday:     salesToday,
		SalesWeek:      salesWeek,
		TopItems:       topItems,
		ShiftsToday:    shiftsToday,
		ScheduleHealth: health,
	}, nil
}

// weekdayToDay maps Go's Sunday-first weekday onto the Monday-first day enum.
func weekdayToDay(wd time.Weekday) schedule.Day {
	if wd == time.Sunday {
		return schedule.Sunday
	}
	return schedule.Day(int(wd) - 1)
}

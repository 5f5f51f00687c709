package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/schedule"
)

type shiftRepository interface {
	List(ctx context.Context, filter models.ShiftFilter) ([]models.StaffShift, int, error)
	FindByID(ctx context.Context, id string) (*models.StaffShift, error)
	ListByStaff(ctx context.Context, staffID string) ([]models.StaffShift, error)
	Create(ctx context.Context, shift *models.StaffShift) error
	Update(ctx context.Context, shift *models.StaffShift) error
	Delete(ctx context.Context, id string) error
}

// ShiftServiceConfig tunes shift validation behaviour.
type ShiftServiceConfig struct {
	// EnforceBusinessHours rejects shifts outside the restaurant's operating
	// window. When false out-of-window shifts are stored and only surface in
	// week reports.
	EnforceBusinessHours bool
}

// ShiftService manages staff shifts. Every write revalidates against the
// staff member's existing shifts and the restaurant's business hours before
// touching storage.
type ShiftService struct {
	repo      shiftRepository
	hours     businessHoursRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ShiftServiceConfig
}

// NewShiftService constructs a ShiftService.
func NewShiftService(repo shiftRepository, hours businessHoursRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg ShiftServiceConfig) *ShiftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ShiftService{repo: repo, hours: hours, cache: cache, validator: validate, logger: logger, cfg: cfg}
}

// List returns shifts for the filter plus pagination metadata.
func (s *ShiftService) List(ctx context.Context, filter models.ShiftFilter) ([]models.StaffShift, *models.Pagination, error) {
	shifts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return shifts, pagination, nil
}

// Get loads one shift.
func (s *ShiftService) Get(ctx context.Context, id string) (*models.StaffShift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	return shift, nil
}

// Create schedules a new shift after overlap and business-hours checks.
func (s *ShiftService) Create(ctx context.Context, restaurantID string, req dto.CreateShiftRequest) (*models.StaffShift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}

	day, err := schedule.ParseDay(req.Day)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", req.Day))
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	candidate, err := schedule.ParseTimeRange(req.Start, req.End, active)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	if err := s.checkConflicts(ctx, req.StaffID, day, candidate, ""); err != nil {
		return nil, err
	}
	if err := s.checkBusinessHours(ctx, restaurantID, day, candidate); err != nil {
		return nil, err
	}

	shift := &models.StaffShift{
		RestaurantID: restaurantID,
		StaffID:      req.StaffID,
		DayOfWeek:    day.String(),
		StartTime:    candidate.Start.String(),
		EndTime:      candidate.End.String(),
		Active:       active,
		Position:     req.Position,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift")
	}
	s.invalidateDashboard(ctx, restaurantID)
	return shift, nil
}

// Update patches an existing shift and revalidates the result against the
// rest of the staff member's schedule, excluding the shift itself.
func (s *ShiftService) Update(ctx context.Context, id string, req dto.UpdateShiftRequest) (*models.StaffShift, error) {
	shift, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Day != nil {
		day, err := schedule.ParseDay(*req.Day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", *req.Day))
		}
		shift.DayOfWeek = day.String()
	}
	if req.Start != nil {
		shift.StartTime = *req.Start
	}
	if req.End != nil {
		shift.EndTime = *req.End
	}
	if req.Position != nil {
		shift.Position = req.Position
	}
	if req.Active != nil {
		shift.Active = *req.Active
	}

	day, err := schedule.ParseDay(shift.DayOfWeek)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", shift.DayOfWeek))
	}
	candidate, err := schedule.ParseTimeRange(shift.StartTime, shift.EndTime, shift.Active)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	shift.StartTime = candidate.Start.String()
	shift.EndTime = candidate.End.String()

	if err := s.checkConflicts(ctx, shift.StaffID, day, candidate, shift.ID); err != nil {
		return nil, err
	}
	if err := s.checkBusinessHours(ctx, shift.RestaurantID, day, candidate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift")
	}
	s.invalidateDashboard(ctx, shift.RestaurantID)
	return shift, nil
}

// Delete removes a shift.
func (s *ShiftService) Delete(ctx context.Context, id string) error {
	shift, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift")
	}
	s.invalidateDashboard(ctx, shift.RestaurantID)
	return nil
}

// checkConflicts rejects the candidate when it overlaps any of the staff
// member's other active shifts on the same day. Back-to-back shifts where one
// ends exactly when the next starts are allowed.
func (s *ShiftService) checkConflicts(ctx context.Context, staffID string, day schedule.Day, candidate schedule.TimeRange, excludeID string) error {
	existing, err := s.repo.ListByStaff(ctx, staffID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing shifts")
	}
	for _, other := range existing {
		if other.ID == excludeID || !other.Active {
			continue
		}
		otherDay, err := schedule.ParseDay(other.DayOfWeek)
		if err != nil || otherDay != day {
			continue
		}
		otherRange, err := schedule.ParseTimeRange(other.StartTime, other.EndTime, other.Active)
		if err != nil {
			s.logger.Warn("stored shift has invalid times", zap.String("shift_id", other.ID), zap.Error(err))
			continue
		}
		if schedule.Overlaps(candidate, otherRange) {
			conflictErr := &models.ShiftConflictError{
				Message: fmt.Sprintf("shift %s overlaps existing shift %s on %s", candidate, otherRange, day),
				Conflict: models.ShiftConflict{
					ShiftID:   other.ID,
					StaffID:   other.StaffID,
					DayOfWeek: other.DayOfWeek,
					StartTime: other.StartTime,
					EndTime:   other.EndTime,
				},
			}
			return appErrors.Wrap(conflictErr, appErrors.ErrScheduleConflict.Code, appErrors.ErrScheduleConflict.Status, conflictErr.Message)
		}
	}
	return nil
}

// checkBusinessHours verifies the candidate fits the restaurant's configured
// window. A day without configured hours imposes no constraint; a day marked
// closed rejects all active shifts.
func (s *ShiftService) checkBusinessHours(ctx context.Context, restaurantID string, day schedule.Day, candidate schedule.TimeRange) error {
	if !candidate.Active {
		return nil
	}
	hours, err := s.hours.ListBusinessHours(ctx, restaurantID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load business hours")
	}
	for _, h := range hours {
		hDay, err := schedule.ParseDay(h.DayOfWeek)
		if err != nil || hDay != day {
			continue
		}
		if h.Closed {
			return s.hoursViolation(day, candidate, ReasonDayClosed)
		}
		open, err := schedule.ParseTimeOfDay(h.OpenTime)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		closing, err := schedule.ParseTimeOfDay(h.CloseTime)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		window, err := schedule.NewWindow(open, closing)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		if reason, bad := window.ViolationReason(candidate); bad {
			return s.hoursViolation(day, candidate, reason)
		}
		return nil
	}
	return nil
}

func (s *ShiftService) hoursViolation(day schedule.Day, candidate schedule.TimeRange, reason string) error {
	msg := fmt.Sprintf("shift %s on %s %s", candidate, day, reason)
	if !s.cfg.EnforceBusinessHours {
		s.logger.Warn("shift outside business hours accepted", zap.String("detail", msg))
		return nil
	}
	return appErrors.Clone(appErrors.ErrOutsideHours, msg)
}

func (s *ShiftService) invalidateDashboard(ctx context.Context, restaurantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dashboard:"+restaurantID+"*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}

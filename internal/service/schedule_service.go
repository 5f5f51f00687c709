package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/schedule"
)

// ReasonDayClosed flags active shifts scheduled on a day the restaurant is
// marked closed.
const ReasonDayClosed = "day marked closed"

type scheduleShiftRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.StaffShift, error)
}

type businessHoursRepository interface {
	ListBusinessHours(ctx context.Context, restaurantID string) ([]models.BusinessHour, error)
}

// ScheduleService validates weekly schedules. It converts loose JSON payloads
// and stored rows into constructed ranges at this boundary so the validation
// core only ever sees well-formed values.
type ScheduleService struct {
	shifts    scheduleShiftRepository
	hours     businessHoursRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(shifts scheduleShiftRepository, hours businessHoursRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ScheduleService{shifts: shifts, hours: hours, validator: validate, logger: logger}
}

// Validate runs the stateless week validation endpoint. Windows in the
// request take precedence; otherwise the restaurant's stored business hours
// apply, and days without either fall back to the full-day window.
func (s *ScheduleService) Validate(ctx context.Context, req dto.ValidateScheduleRequest) (*dto.WeekValidationReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	sched := make(schedule.WeeklySchedule, len(req.Days))
	for _, dayPayload := range req.Days {
		day, err := schedule.ParseDay(dayPayload.Day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", dayPayload.Day))
		}
		if _, exists := sched[day]; exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %s listed twice", day))
		}
		ranges := make([]schedule.TimeRange, 0, len(dayPayload.Ranges))
		for _, rp := range dayPayload.Ranges {
			r, err := schedule.ParseTimeRange(rp.Start, rp.End, rp.Active)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %s: %v", day, err))
			}
			ranges = append(ranges, r)
		}
		sched[day] = ranges
	}

	var (
		windows map[schedule.Day]schedule.Window
		closed  map[schedule.Day]bool
		err     error
	)
	switch {
	case len(req.Windows) > 0:
		windows, err = parseWindowPayloads(req.Windows)
		if err != nil {
			return nil, err
		}
	case req.RestaurantID != "":
		windows, closed, err = s.windowsFor(ctx, req.RestaurantID)
		if err != nil {
			return nil, err
		}
	}

	report, err := schedule.ValidateWeek(sched, windows)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return buildWeekReport(report, sched, closed), nil
}

// WeekReport validates a restaurant's stored shifts against its business
// hours and returns the full Monday-first week.
func (s *ScheduleService) WeekReport(ctx context.Context, restaurantID string) (*dto.WeekValidationReport, error) {
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}

	shifts, err := s.shifts.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts")
	}

	sched := make(schedule.WeeklySchedule)
	for _, shift := range shifts {
		day, err := schedule.ParseDay(shift.DayOfWeek)
		if err != nil {
			s.logger.Warn("skipping shift with unknown day",
				zap.String("shift_id", shift.ID), zap.String("day", shift.DayOfWeek))
			continue
		}
		r, err := schedule.ParseTimeRange(shift.StartTime, shift.EndTime, shift.Active)
		if err != nil {
			s.logger.Warn("skipping shift with invalid times",
				zap.String("shift_id", shift.ID), zap.Error(err))
			continue
		}
		sched[day] = append(sched[day], r)
	}

	windows, closed, err := s.windowsFor(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	report, err := schedule.ValidateWeek(sched, windows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored schedule is corrupt")
	}
	return buildWeekReport(report, sched, closed), nil
}

// Health condenses the week report into the dashboard summary.
func (s *ScheduleService) Health(ctx context.Context, restaurantID string) (dto.ScheduleHealthPayload, error) {
	report, err := s.WeekReport(ctx, restaurantID)
	if err != nil {
		return dto.ScheduleHealthPayload{}, err
	}
	health := dto.ScheduleHealthPayload{Valid: report.Valid}
	for _, day := range report.Days {
		if !day.Valid {
			health.InvalidDays = append(health.InvalidDays, day.Day)
		}
		health.Conflicts += len(day.Conflicts)
		health.Violations += len(day.Violations)
	}
	return health, nil
}

// windowsFor maps a restaurant's stored business hours onto validation
// windows. Closed days carry no window and are reported separately.
func (s *ScheduleService) windowsFor(ctx context.Context, restaurantID string) (map[schedule.Day]schedule.Window, map[schedule.Day]bool, error) {
	hours, err := s.hours.ListBusinessHours(ctx, restaurantID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load business hours")
	}

	windows := make(map[schedule.Day]schedule.Window, len(hours))
	closed := make(map[schedule.Day]bool)
	for _, h := range hours {
		day, err := schedule.ParseDay(h.DayOfWeek)
		if err != nil {
			s.logger.Warn("skipping business hours with unknown day",
				zap.String("restaurant_id", restaurantID), zap.String("day", h.DayOfWeek))
			continue
		}
		if h.Closed {
			closed[day] = true
			continue
		}
		open, err := schedule.ParseTimeOfDay(h.OpenTime)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		closing, err := schedule.ParseTimeOfDay(h.CloseTime)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		window, err := schedule.NewWindow(open, closing)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored business hours are corrupt")
		}
		windows[day] = window
	}
	return windows, closed, nil
}

func parseWindowPayloads(payloads []dto.WindowPayload) (map[schedule.Day]schedule.Window, error) {
	windows := make(map[schedule.Day]schedule.Window, len(payloads))
	for _, wp := range payloads {
		day, err := schedule.ParseDay(wp.Day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown window day %q", wp.Day))
		}
		open, err := schedule.ParseTimeOfDay(wp.Open)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("window for %s: %v", day, err))
		}
		closing, err := schedule.ParseTimeOfDay(wp.Close)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("window for %s: %v", day, err))
		}
		window, err := schedule.NewWindow(open, closing)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("window for %s: %v", day, err))
		}
		windows[day] = window
	}
	return windows, nil
}

// buildWeekReport flattens the per-day outcomes into the wire shape, always
// Monday-first across all seven days. Active ranges on closed days become
// violations on top of the core outcome.
func buildWeekReport(report map[schedule.Day]schedule.Outcome, sched schedule.WeeklySchedule, closed map[schedule.Day]bool) *dto.WeekValidationReport {
	out := &dto.WeekValidationReport{Valid: true, Days: make([]dto.DayOutcomePayload, 0, len(schedule.Days))}
	for _, day := range schedule.Days {
		outcome := report[day]
		payload := dto.DayOutcomePayload{
			Day:     day.String(),
			Valid:   outcome.Valid,
			Checked: outcome.Checked,
			Skipped: outcome.Skipped,
		}
		for _, c := range outcome.Conflicts {
			payload.Conflicts = append(payload.Conflicts, dto.ConflictPayload{
				First:  c.First.String(),
				Second: c.Second.String(),
			})
		}
		for _, v := range outcome.Violations {
			payload.Violations = append(payload.Violations, dto.ViolationPayload{
				Range:  v.Range.String(),
				Reason: v.Reason,
			})
		}
		if closed[day] {
			for _, r := range sched[day] {
				if r.Active {
					payload.Violations = append(payload.Violations, dto.ViolationPayload{
						Range:  r.String(),
						Reason: ReasonDayClosed,
					})
					payload.Valid = false
				}
			}
		}
		if !payload.Valid {
			out.Valid = false
		}
		out.Days = append(out.Days, payload)
	}
	return out
}

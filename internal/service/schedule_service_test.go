package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
)

type mockScheduleShiftRepo struct {
	shifts []models.StaffShift
}

func (m *mockScheduleShiftRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.StaffShift, error) {
	return m.shifts, nil
}

func newScheduleService(shifts []models.StaffShift, hours []models.BusinessHour) *ScheduleService {
	return NewScheduleService(
		&mockScheduleShiftRepo{shifts: shifts},
		&mockHoursRepo{hours: hours},
		validator.New(),
		zap.NewNop(),
	)
}

func TestScheduleValidateDetectsOverlap(t *testing.T) {
	svc := newScheduleService(nil, nil)

	report, err := svc.Validate(context.Background(), dto.ValidateScheduleRequest{
		Days: []dto.DayRangesPayload{
			{Day: "lunes", Ranges: []dto.RangePayload{
				{Start: "09:00", End: "13:00", Active: true},
				{Start: "12:00", End: "16:00", Active: true},
			}},
			{Day: "martes", Ranges: []dto.RangePayload{
				{Start: "09:00", End: "13:00", Active: true},
				{Start: "13:00", End: "17:00", Active: true},
			}},
		},
	})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Days, 7)

	monday := report.Days[0]
	assert.Equal(t, "MONDAY", monday.Day)
	assert.False(t, monday.Valid)
	require.Len(t, monday.Conflicts, 1)
	assert.Equal(t, "09:00-13:00", monday.Conflicts[0].First)
	assert.Equal(t, "12:00-16:00", monday.Conflicts[0].Second)

	tuesday := report.Days[1]
	assert.True(t, tuesday.Valid)
	assert.Empty(t, tuesday.Conflicts)
}

func TestScheduleValidateWindowOverride(t *testing.T) {
	svc := newScheduleService(nil, nil)

	report, err := svc.Validate(context.Background(), dto.ValidateScheduleRequest{
		Days: []dto.DayRangesPayload{
			{Day: "FRIDAY", Ranges: []dto.RangePayload{
				{Start: "08:00", End: "12:00", Active: true},
			}},
		},
		Windows: []dto.WindowPayload{
			{Day: "FRIDAY", Open: "10:00", Close: "22:00"},
		},
	})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	friday := report.Days[4]
	require.Len(t, friday.Violations, 1)
	assert.Equal(t, "starts before opening", friday.Violations[0].Reason)
}

func TestScheduleValidateSkipsInactive(t *testing.T) {
	svc := newScheduleService(nil, nil)

	report, err := svc.Validate(context.Background(), dto.ValidateScheduleRequest{
		Days: []dto.DayRangesPayload{
			{Day: "MONDAY", Ranges: []dto.RangePayload{
				{Start: "09:00", End: "13:00", Active: true},
				{Start: "10:00", End: "12:00", Active: false},
			}},
		},
	})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	monday := report.Days[0]
	assert.Equal(t, 1, monday.Checked)
	assert.Equal(t, 1, monday.Skipped)
}

func TestScheduleValidateRejectsUnknownDay(t *testing.T) {
	svc := newScheduleService(nil, nil)

	_, err := svc.Validate(context.Background(), dto.ValidateScheduleRequest{
		Days: []dto.DayRangesPayload{
			{Day: "someday", Ranges: []dto.RangePayload{{Start: "09:00", End: "13:00", Active: true}}},
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestScheduleValidateRejectsDuplicateDay(t *testing.T) {
	svc := newScheduleService(nil, nil)

	_, err := svc.Validate(context.Background(), dto.ValidateScheduleRequest{
		Days: []dto.DayRangesPayload{
			{Day: "MONDAY", Ranges: []dto.RangePayload{{Start: "09:00", End: "13:00", Active: true}}},
			{Day: "lunes", Ranges: []dto.RangePayload{{Start: "14:00", End: "18:00", Active: true}}},
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestScheduleWeekReportUsesStoredData(t *testing.T) {
	shifts := []models.StaffShift{
		{ID: "sh1", StaffID: "s1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
		{ID: "sh2", StaffID: "s2", DayOfWeek: "MONDAY", StartTime: "12:00", EndTime: "16:00", Active: true},
		{ID: "sh3", StaffID: "s1", DayOfWeek: "SUNDAY", StartTime: "10:00", EndTime: "14:00", Active: true},
	}
	hours := []models.BusinessHour{
		{DayOfWeek: "MONDAY", OpenTime: "08:00", CloseTime: "22:00"},
		{DayOfWeek: "SUNDAY", Closed: true},
	}
	svc := newScheduleService(shifts, hours)

	report, err := svc.WeekReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.False(t, report.Valid)

	monday := report.Days[0]
	require.Len(t, monday.Conflicts, 1)

	sunday := report.Days[6]
	assert.False(t, sunday.Valid)
	require.Len(t, sunday.Violations, 1)
	assert.Equal(t, ReasonDayClosed, sunday.Violations[0].Reason)
}

func TestScheduleHealthCondensesReport(t *testing.T) {
	shifts := []models.StaffShift{
		{ID: "sh1", StaffID: "s1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
		{ID: "sh2", StaffID: "s1", DayOfWeek: "MONDAY", StartTime: "12:00", EndTime: "16:00", Active: true},
	}
	svc := newScheduleService(shifts, nil)

	health, err := svc.Health(context.Background(), "r1")
	require.NoError(t, err)
	assert.False(t, health.Valid)
	assert.Equal(t, []string{"MONDAY"}, health.InvalidDays)
	assert.Equal(t, 1, health.Conflicts)
	assert.Equal(t, 0, health.Violations)
}

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
)

type mockShiftRepo struct {
	shifts  []models.StaffShift
	created *models.StaffShift
	updated *models.StaffShift
	deleted string
}

func (m *mockShiftRepo) List(ctx context.Context, filter models.ShiftFilter) ([]models.StaffShift, int, error) {
	return m.shifts, len(m.shifts), nil
}

func (m *mockShiftRepo) FindByID(ctx context.Context, id string) (*models.StaffShift, error) {
	for i := range m.shifts {
		if m.shifts[i].ID == id {
			copy := m.shifts[i]
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockShiftRepo) ListByStaff(ctx context.Context, staffID string) ([]models.StaffShift, error) {
	var out []models.StaffShift
	for _, s := range m.shifts {
		if s.StaffID == staffID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) Create(ctx context.Context, shift *models.StaffShift) error {
	shift.ID = "new-shift"
	m.created = shift
	return nil
}

func (m *mockShiftRepo) Update(ctx context.Context, shift *models.StaffShift) error {
	m.updated = shift
	return nil
}

func (m *mockShiftRepo) Delete(ctx context.Context, id string) error {
	m.deleted = id
	return nil
}

type mockHoursRepo struct {
	hours []models.BusinessHour
}

func (m *mockHoursRepo) ListBusinessHours(ctx context.Context, restaurantID string) ([]models.BusinessHour, error) {
	return m.hours, nil
}

func newShiftService(repo *mockShiftRepo, hours *mockHoursRepo, enforce bool) *ShiftService {
	return NewShiftService(repo, hours, nil, validator.New(), zap.NewNop(), ShiftServiceConfig{EnforceBusinessHours: enforce})
}

func TestShiftServiceCreate(t *testing.T) {
	repo := &mockShiftRepo{}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	shift, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "lunes",
		Start:   "09:00",
		End:     "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "MONDAY", shift.DayOfWeek)
	assert.Equal(t, "09:00", shift.StartTime)
	assert.Equal(t, "17:00", shift.EndTime)
	assert.True(t, shift.Active)
	require.NotNil(t, repo.created)
}

func TestShiftServiceCreateRejectsOverlap(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "12:00",
		End:     "16:00",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestShiftServiceCreateAllowsBackToBack(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "13:00",
		End:     "17:00",
	})
	require.NoError(t, err)
}

func TestShiftServiceCreateIgnoresInactiveShifts(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: false},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "10:00",
		End:     "12:00",
	})
	require.NoError(t, err)
}

func TestShiftServiceCreateOutsideBusinessHours(t *testing.T) {
	hours := &mockHoursRepo{hours: []models.BusinessHour{
		{RestaurantID: "r1", DayOfWeek: "MONDAY", OpenTime: "10:00", CloseTime: "22:00"},
	}}
	repo := &mockShiftRepo{}
	svc := newShiftService(repo, hours, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "08:00",
		End:     "12:00",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrOutsideHours.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "starts before opening")
}

func TestShiftServiceCreateOutsideHoursUnenforced(t *testing.T) {
	hours := &mockHoursRepo{hours: []models.BusinessHour{
		{RestaurantID: "r1", DayOfWeek: "MONDAY", OpenTime: "10:00", CloseTime: "22:00"},
	}}
	repo := &mockShiftRepo{}
	svc := newShiftService(repo, hours, false)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "08:00",
		End:     "12:00",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
}

func TestShiftServiceCreateOnClosedDay(t *testing.T) {
	hours := &mockHoursRepo{hours: []models.BusinessHour{
		{RestaurantID: "r1", DayOfWeek: "SUNDAY", Closed: true},
	}}
	svc := newShiftService(&mockShiftRepo{}, hours, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "domingo",
		Start:   "10:00",
		End:     "14:00",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrOutsideHours.Code, appErr.Code)
}

func TestShiftServiceCreateRejectsInvertedRange(t *testing.T) {
	svc := newShiftService(&mockShiftRepo{}, &mockHoursRepo{}, true)

	_, err := svc.Create(context.Background(), "r1", dto.CreateShiftRequest{
		StaffID: "s1",
		Day:     "MONDAY",
		Start:   "17:00",
		End:     "09:00",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestShiftServiceUpdateExcludesSelfFromOverlap(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	start := "10:00"
	end := "14:00"
	shift, err := svc.Update(context.Background(), "sh1", dto.UpdateShiftRequest{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "10:00", shift.StartTime)
	assert.Equal(t, "14:00", shift.EndTime)
	require.NotNil(t, repo.updated)
}

func TestShiftServiceUpdateRejectsOverlapWithOther(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
		{ID: "sh2", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "14:00", EndTime: "18:00", Active: true},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	end := "15:00"
	_, err := svc.Update(context.Background(), "sh1", dto.UpdateShiftRequest{End: &end})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)
}

func TestShiftServiceDelete(t *testing.T) {
	repo := &mockShiftRepo{shifts: []models.StaffShift{
		{ID: "sh1", StaffID: "s1", RestaurantID: "r1", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "13:00", Active: true},
	}}
	svc := newShiftService(repo, &mockHoursRepo{}, true)

	require.NoError(t, svc.Delete(context.Background(), "sh1"))
	assert.Equal(t, "sh1", repo.deleted)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

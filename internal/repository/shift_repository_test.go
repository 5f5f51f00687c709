package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesa-admin/resto-bo-api/internal/models"
)

func TestShiftRepositoryListByStaff(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	rows := sqlmock.NewRows([]string{"id", "restaurant_id", "staff_id", "day_of_week", "start_time", "end_time", "active", "position", "created_at", "updated_at"}).
		AddRow("s1", "r1", "u1", "MONDAY", "08:00", "14:00", true, nil, time.Now(), time.Now()).
		AddRow("s2", "r1", "u1", "MONDAY", "14:00", "20:00", true, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, restaurant_id, staff_id, day_of_week, start_time, end_time, active, position, created_at, updated_at FROM staff_shifts WHERE staff_id = $1 ORDER BY day_of_week ASC, start_time ASC")).
		WithArgs("u1").
		WillReturnRows(rows)

	shifts, err := repo.ListByStaff(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "08:00", shifts[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectExec("INSERT INTO staff_shifts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	shift := &models.StaffShift{RestaurantID: "r1", StaffID: "u1", DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "14:00", Active: true}
	require.NoError(t, repo.Create(context.Background(), shift))
	assert.NotEmpty(t, shift.ID)
	assert.False(t, shift.UpdatedAt.IsZero())

	mock.ExpectExec("UPDATE staff_shifts SET").
		WillReturnResult(sqlmock.NewResult(1, 1))

	shift.EndTime = "15:00"
	require.NoError(t, repo.Update(context.Background(), shift))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM staff_shifts WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

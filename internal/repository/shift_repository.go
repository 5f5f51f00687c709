package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mesa-admin/resto-bo-api/internal/models"
)

// ShiftRepository provides persistence for staff shifts.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository creates a new shift repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = "id, restaurant_id, staff_id, day_of_week, start_time, end_time, active, position, created_at, updated_at"

// List returns shifts with optional filtering and pagination.
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.StaffShift, int, error) {
	base := "FROM staff_shifts WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.RestaurantID != "" {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", len(args)+1))
		args = append(args, filter.RestaurantID)
	}
	if filter.StaffID != "" {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", len(args)+1))
		args = append(args, filter.StaffID)
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"day_of_week": true, "start_time": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "start_time"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", shiftColumns, base, sortBy, order, size, offset)
	var shifts []models.StaffShift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list shifts: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count shifts: %w", err)
	}

	return shifts, total, nil
}

// FindByID loads a shift by id.
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*models.StaffShift, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_shifts WHERE id = $1", shiftColumns)
	var shift models.StaffShift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListByStaff returns all shifts for a staff member ordered by day and start
// time, the shape week validation consumes.
func (r *ShiftRepository) ListByStaff(ctx context.Context, staffID string) ([]models.StaffShift, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_shifts WHERE staff_id = $1 ORDER BY day_of_week ASC, start_time ASC", shiftColumns)
	var shifts []models.StaffShift
	if err := r.db.SelectContext(ctx, &shifts, query, staffID); err != nil {
		return nil, fmt.Errorf("list shifts by staff: %w", err)
	}
	return shifts, nil
}

// ListByRestaurant returns every shift for a restaurant, the shape week
// validation consumes.
func (r *ShiftRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.StaffShift, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_shifts WHERE restaurant_id = $1 ORDER BY day_of_week ASC, start_time ASC", shiftColumns)
	var shifts []models.StaffShift
	if err := r.db.SelectContext(ctx, &shifts, query, restaurantID); err != nil {
		return nil, fmt.Errorf("list shifts by restaurant: %w", err)
	}
	return shifts, nil
}

// ListByRestaurantDay returns a restaurant's shifts for one day.
func (r *ShiftRepository) ListByRestaurantDay(ctx context.Context, restaurantID, dayOfWeek string) ([]models.StaffShift, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_shifts WHERE restaurant_id = $1 AND day_of_week = $2 ORDER BY start_time ASC", shiftColumns)
	var shifts []models.StaffShift
	if err := r.db.SelectContext(ctx, &shifts, query, restaurantID, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list shifts by restaurant day: %w", err)
	}
	return shifts, nil
}

// Create stores a new shift record.
func (r *ShiftRepository) Create(ctx context.Context, shift *models.StaffShift) error {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = now
	}
	shift.UpdatedAt = now

	const query = `INSERT INTO staff_shifts (id, restaurant_id, staff_id, day_of_week, start_time, end_time, active, position, created_at, updated_at) VALUES (:id, :restaurant_id, :staff_id, :day_of_week, :start_time, :end_time, :active, :position, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// Update modifies a shift record.
func (r *ShiftRepository) Update(ctx context.Context, shift *models.StaffShift) error {
	shift.UpdatedAt = time.Now().UTC()
	const query = `UPDATE staff_shifts SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time, active = :active, position = :position, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, shift); err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}

// Delete removes a shift by id.
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM staff_shifts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	return nil
}

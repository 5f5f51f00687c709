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

// RestaurantRepository provides persistence for restaurants and their
// per-day business hours.
type RestaurantRepository struct {
	db *sqlx.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = "id, name, address, phone, timezone, currency, active, created_at, updated_at"

// List returns restaurants with optional filtering and pagination.
func (r *RestaurantRepository) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error) {
	base := "FROM restaurants WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "created_at": true, "updated_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "name"
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
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", restaurantColumns, base, sortBy, order, size, offset)
	var restaurants []models.Restaurant
	if err := r.db.SelectContext(ctx, &restaurants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	return restaurants, total, nil
}

// FindByID loads a restaurant by id.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	query := fmt.Sprintf("SELECT %s FROM restaurants WHERE id = $1", restaurantColumns)
	var rest models.Restaurant
	if err := r.db.GetContext(ctx, &rest, query, id); err != nil {
		return nil, err
	}
	return &rest, nil
}

// Create stores a new restaurant record.
func (r *RestaurantRepository) Create(ctx context.Context, rest *models.Restaurant) error {
	if rest.ID == "" {
		rest.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rest.CreatedAt.IsZero() {
		rest.CreatedAt = now
	}
	rest.UpdatedAt = now

	const query = `INSERT INTO restaurants (id, name, address, phone, timezone, currency, active, created_at, updated_at) VALUES (:id, :name, :address, :phone, :timezone, :currency, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rest); err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

// Update modifies a restaurant record.
func (r *RestaurantRepository) Update(ctx context.Context, rest *models.Restaurant) error {
	rest.UpdatedAt = time.Now().UTC()
	const query = `UPDATE restaurants SET name = :name, address = :address, phone = :phone, timezone = :timezone, currency = :currency, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rest); err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

// Deactivate soft deletes a restaurant.
func (r *RestaurantRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE restaurants SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate restaurant: %w", err)
	}
	return nil
}

// ListBusinessHours returns the configured operating windows for a
// restaurant, Monday-first.
func (r *RestaurantRepository) ListBusinessHours(ctx context.Context, restaurantID string) ([]models.BusinessHour, error) {
	const query = `SELECT id, restaurant_id, day_of_week, open_time, close_time, closed, created_at, updated_at FROM business_hours WHERE restaurant_id = $1 ORDER BY CASE day_of_week WHEN 'MONDAY' THEN 0 WHEN 'TUESDAY' THEN 1 WHEN 'WEDNESDAY' THEN 2 WHEN 'THURSDAY' THEN 3 WHEN 'FRIDAY' THEN 4 WHEN 'SATURDAY' THEN 5 ELSE 6 END`
	var hours []models.BusinessHour
	if err := r.db.SelectContext(ctx, &hours, query, restaurantID); err != nil {
		return nil, fmt.Errorf("list business hours: %w", err)
	}
	return hours, nil
}

// UpsertBusinessHour inserts or replaces one day's operating window.
func (r *RestaurantRepository) UpsertBusinessHour(ctx context.Context, hour *models.BusinessHour) error {
	if hour.ID == "" {
		hour.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if hour.CreatedAt.IsZero() {
		hour.CreatedAt = now
	}
	hour.UpdatedAt = now

	const query = `INSERT INTO business_hours (id, restaurant_id, day_of_week, open_time, close_time, closed, created_at, updated_at) VALUES (:id, :restaurant_id, :day_of_week, :open_time, :close_time, :closed, :created_at, :updated_at) ON CONFLICT (restaurant_id, day_of_week) DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, closed = EXCLUDED.closed, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, hour); err != nil {
		return fmt.Errorf("upsert business hour: %w", err)
	}
	return nil
}

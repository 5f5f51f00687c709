package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mesa-admin/resto-bo-api/internal/models"
)

// MenuRepository provides persistence for menu items.
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = "id, restaurant_id, category, name, description, price_cents, image_url, available, created_at, updated_at"

// List returns menu items with optional filtering and pagination.
func (r *MenuRepository) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, int, error) {
	base := "FROM menu_items WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.RestaurantID != "" {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", len(args)+1))
		args = append(args, filter.RestaurantID)
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Available != nil {
		conditions = append(conditions, fmt.Sprintf("available = $%d", len(args)+1))
		args = append(args, *filter.Available)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "category": true, "price_cents": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "category"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, name ASC LIMIT %d OFFSET %d", menuColumns, base, sortBy, order, size, offset)
	var items []models.MenuItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list menu items: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count menu items: %w", err)
	}

	return items, total, nil
}

// FindByID loads a menu item by id.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	query := fmt.Sprintf("SELECT %s FROM menu_items WHERE id = $1", menuColumns)
	var item models.MenuItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsByName reports whether the restaurant already has an item with the
// name, optionally excluding an item being updated.
func (r *MenuRepository) ExistsByName(ctx context.Context, restaurantID, name, excludeID string) (bool, error) {
	const query = `SELECT id FROM menu_items WHERE restaurant_id = $1 AND LOWER(name) = LOWER($2) LIMIT 1`
	var owner string
	if err := r.db.GetContext(ctx, &owner, query, restaurantID, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check menu item name: %w", err)
	}
	return excludeID == "" || owner != excludeID, nil
}

// Create stores a new menu item.
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO menu_items (id, restaurant_id, category, name, description, price_cents, image_url, available, created_at, updated_at) VALUES (:id, :restaurant_id, :category, :name, :description, :price_cents, :image_url, :available, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Update modifies a menu item.
func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE menu_items SET category = :category, name = :name, description = :description, price_cents = :price_cents, image_url = :image_url, available = :available, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete removes a menu item by id.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

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

// SaleRepository provides persistence for recorded sales.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new sale repository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

const saleColumns = "id, restaurant_id, recorded_by, channel, total_cents, note, sold_at, created_at"

// Create stores a sale and its line items in a single transaction.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create sale: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const saleQuery = `INSERT INTO sales (id, restaurant_id, recorded_by, channel, total_cents, note, sold_at, created_at) VALUES (:id, :restaurant_id, :recorded_by, :channel, :total_cents, :note, :sold_at, :created_at)`
	if _, err = tx.NamedExecContext(ctx, saleQuery, sale); err != nil {
		return fmt.Errorf("create sale: %w", err)
	}

	const itemQuery = `INSERT INTO sale_items (id, sale_id, menu_item_id, quantity, unit_price_cents) VALUES (:id, :sale_id, :menu_item_id, :quantity, :unit_price_cents)`
	for i := range sale.Items {
		item := sale.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.SaleID = sale.ID
		if _, err = tx.NamedExecContext(ctx, itemQuery, &item); err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
		sale.Items[i] = item
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create sale: %w", err)
	}
	return nil
}

// FindByID loads a sale and its items.
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	query := fmt.Sprintf("SELECT %s FROM sales WHERE id = $1", saleColumns)
	var sale models.Sale
	if err := r.db.GetContext(ctx, &sale, query, id); err != nil {
		return nil, err
	}

	const itemsQuery = `SELECT id, sale_id, menu_item_id, quantity, unit_price_cents FROM sale_items WHERE sale_id = $1`
	if err := r.db.SelectContext(ctx, &sale.Items, itemsQuery, id); err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	return &sale, nil
}

// List returns sales with optional filtering and pagination. Line items are
// not loaded for list views.
func (r *SaleRepository) List(ctx context.Context, filter models.SaleFilter) ([]models.Sale, int, error) {
	base := "FROM sales WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.RestaurantID != "" {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", len(args)+1))
		args = append(args, filter.RestaurantID)
	}
	if filter.Channel != "" {
		conditions = append(conditions, fmt.Sprintf("channel = $%d", len(args)+1))
		args = append(args, filter.Channel)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("sold_at >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("sold_at < $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"sold_at": true, "total_cents": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "sold_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", saleColumns, base, sortBy, order, size, offset)
	var sales []models.Sale
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	return sales, total, nil
}

// DailySummary aggregates sales per calendar day over the window.
func (r *SaleRepository) DailySummary(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailySalesSummary, error) {
	const query = `SELECT TO_CHAR(sold_at::date, 'YYYY-MM-DD') AS date, COUNT(*) AS sale_count, COALESCE(SUM(total_cents), 0) AS total_cents FROM sales WHERE restaurant_id = $1 AND sold_at >= $2 AND sold_at < $3 GROUP BY sold_at::date ORDER BY sold_at::date ASC`
	var summaries []models.DailySalesSummary
	if err := r.db.SelectContext(ctx, &summaries, query, restaurantID, from, to); err != nil {
		return nil, fmt.Errorf("daily sales summary: %w", err)
	}
	return summaries, nil
}

// TopItems ranks menu items by units sold over the window.
func (r *SaleRepository) TopItems(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.TopMenuItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT si.menu_item_id, mi.name, SUM(si.quantity) AS quantity, SUM(si.quantity * si.unit_price_cents) AS total_cents FROM sale_items si JOIN sales s ON s.id = si.sale_id JOIN menu_items mi ON mi.id = si.menu_item_id WHERE s.restaurant_id = $1 AND s.sold_at >= $2 AND s.sold_at < $3 GROUP BY si.menu_item_id, mi.name ORDER BY quantity DESC LIMIT %d`, limit)
	var items []models.TopMenuItem
	if err := r.db.SelectContext(ctx, &items, query, restaurantID, from, to); err != nil {
		return nil, fmt.Errorf("top menu items: %w", err)
	}
	return items, nil
}

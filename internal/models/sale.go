package models

import "time"

// SaleChannel enumerates where a sale originated.
type SaleChannel string

const (
	SaleChannelDineIn   SaleChannel = "DINE_IN"
	SaleChannelTakeaway SaleChannel = "TAKEAWAY"
	SaleChannelDelivery SaleChannel = "DELIVERY"
)

// Sale represents a recorded sale with its line items.
type Sale struct {
	ID           string      `db:"id" json:"id"`
	RestaurantID string      `db:"restaurant_id" json:"restaurant_id"`
	RecordedBy   string      `db:"recorded_by" json:"recorded_by"`
	Channel      SaleChannel `db:"channel" json:"channel"`
	TotalCents   int64       `db:"total_cents" json:"total_cents"`
	Note         *string     `db:"note" json:"note,omitempty"`
	SoldAt       time.Time   `db:"sold_at" json:"sold_at"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	Items        []SaleItem  `db:"-" json:"items,omitempty"`
}

// SaleItem is one menu item line within a sale. UnitPriceCents snapshots the
// menu price at sale time so later menu edits do not rewrite history.
type SaleItem struct {
	ID             string `db:"id" json:"id"`
	SaleID         string `db:"sale_id" json:"sale_id"`
	MenuItemID     string `db:"menu_item_id" json:"menu_item_id"`
	Quantity       int    `db:"quantity" json:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents" json:"unit_price_cents"`
}

// SaleFilter describes query params for listing sales.
type SaleFilter struct {
	RestaurantID string
	Channel      string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// DailySalesSummary aggregates one day's sales for a restaurant.
type DailySalesSummary struct {
	Date       string `db:"date" json:"date"`
	SaleCount  int    `db:"sale_count" json:"sale_count"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
}

// TopMenuItem ranks a menu item by units sold within a period.
type TopMenuItem struct {
	MenuItemID string `db:"menu_item_id" json:"menu_item_id"`
	Name       string `db:"name" json:"name"`
	Quantity   int    `db:"quantity" json:"quantity"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
}

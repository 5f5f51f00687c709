package models

import "time"

// MenuItem represents a sellable item on a restaurant's menu. Prices are
// stored in minor currency units to avoid floating point drift.
type MenuItem struct {
	ID           string    `db:"id" json:"id"`
	RestaurantID string    `db:"restaurant_id" json:"restaurant_id"`
	Category     string    `db:"category" json:"category"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	ImageURL     *string   `db:"image_url" json:"image_url,omitempty"`
	Available    bool      `db:"available" json:"available"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MenuFilter describes query params for listing menu items.
type MenuFilter struct {
	RestaurantID string
	Category     string
	Available    *bool
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

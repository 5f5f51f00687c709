package dto

// CreateMenuItemRequest adds an item to a restaurant's menu. Prices are minor
// currency units.
type CreateMenuItemRequest struct {
	Category    string  `json:"category" validate:"required,min=2"`
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description,omitempty"`
	PriceCents  int64   `json:"price_cents" validate:"required,min=1"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Available   *bool   `json:"available,omitempty"`
}

// UpdateMenuItemRequest patches menu item fields. Nil fields are left
// untouched.
type UpdateMenuItemRequest struct {
	Category    *string `json:"category,omitempty" validate:"omitempty,min=2"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Available   *bool   `json:"available,omitempty"`
}

package dto

import "time"

// SaleItemPayload is one line of a recorded sale. Unit prices come from the
// menu at record time, not from the client.
type SaleItemPayload struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// RecordSaleRequest records a completed sale with its line items.
type RecordSaleRequest struct {
	Channel string            `json:"channel" validate:"required,oneof=DINE_IN TAKEAWAY DELIVERY"`
	SoldAt  *time.Time        `json:"sold_at,omitempty"`
	Note    *string           `json:"note,omitempty"`
	Items   []SaleItemPayload `json:"items" validate:"required,min=1,dive"`
}

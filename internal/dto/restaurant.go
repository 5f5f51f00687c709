package dto

// CreateRestaurantRequest registers a new restaurant location.
type CreateRestaurantRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone string  `json:"timezone" validate:"required"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

// UpdateRestaurantRequest patches restaurant fields. Nil fields are left
// untouched.
type UpdateRestaurantRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Currency *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Active   *bool   `json:"active,omitempty"`
}

// BusinessHourPayload sets one day's operating window. Closed days ignore the
// open/close values.
type BusinessHourPayload struct {
	Day    string `json:"day" validate:"required"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// SetBusinessHoursRequest replaces operating windows for the listed days.
// Days not present keep their stored configuration.
type SetBusinessHoursRequest struct {
	Hours []BusinessHourPayload `json:"hours" validate:"required,min=1,dive"`
}

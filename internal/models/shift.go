package models

import "time"

// StaffShift represents one scheduled shift for a staff member. Day names use
// the canonical uppercase English form; start/end are "HH:mm" within a single
// day (overnight shifts are not supported and must be split by the caller).
type StaffShift struct {
	ID           string    `db:"id" json:"id"`
	RestaurantID string    `db:"restaurant_id" json:"restaurant_id"`
	StaffID      string    `db:"staff_id" json:"staff_id"`
	DayOfWeek    string    `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	Active       bool      `db:"active" json:"active"`
	Position     *string   `db:"position" json:"position,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ShiftFilter describes query params for listing shifts.
type ShiftFilter struct {
	RestaurantID string
	StaffID      string
	DayOfWeek    string
	Active       *bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// ShiftConflict describes an existing shift that collides with a candidate.
type ShiftConflict struct {
	ShiftID   string `json:"shift_id"`
	StaffID   string `json:"staff_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ShiftConflictError is returned when a shift overlaps an existing one.
type ShiftConflictError struct {
	Message  string        `json:"message"`
	Conflict ShiftConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ShiftConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

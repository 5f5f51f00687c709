package dto

// RangePayload mirrors the client's loose time-range JSON shape. Start/End
// are "HH:mm" strings; conversion into validated ranges happens at the
// service boundary so the validator only ever sees constructed values.
type RangePayload struct {
	Start  string `json:"start" validate:"required"`
	End    string `json:"end" validate:"required"`
	Active bool   `json:"active"`
}

// DayRangesPayload groups a day's ranges. Day accepts English or Spanish
// names (the legacy client sends lunes..domingo).
type DayRangesPayload struct {
	Day    string         `json:"day" validate:"required"`
	Ranges []RangePayload `json:"ranges"`
}

// ValidateScheduleRequest is the payload for the stateless week validation
// endpoint. Windows override the restaurant's stored business hours when set.
type ValidateScheduleRequest struct {
	RestaurantID string             `json:"restaurant_id"`
	Days         []DayRangesPayload `json:"days" validate:"required,min=1,dive"`
	Windows      []WindowPayload    `json:"windows,omitempty" validate:"omitempty,dive"`
}

// WindowPayload overrides one day's operating window.
type WindowPayload struct {
	Day   string `json:"day" validate:"required"`
	Open  string `json:"open" validate:"required"`
	Close string `json:"close" validate:"required"`
}

// ConflictPayload reports one overlapping pair in "HH:mm-HH:mm" form.
type ConflictPayload struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// ViolationPayload reports a range outside the operating window.
type ViolationPayload struct {
	Range  string `json:"range"`
	Reason string `json:"reason"`
}

// DayOutcomePayload is one day's validation report.
type DayOutcomePayload struct {
	Day        string             `json:"day"`
	Valid      bool               `json:"valid"`
	Conflicts  []ConflictPayload  `json:"conflicts,omitempty"`
	Violations []ViolationPayload `json:"violations,omitempty"`
	Checked    int                `json:"checked"`
	Skipped    int                `json:"skipped"`
}

// WeekValidationReport aggregates the whole week, Monday-first.
type WeekValidationReport struct {
	Valid bool                `json:"valid"`
	Days  []DayOutcomePayload `json:"days"`
}

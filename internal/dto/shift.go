package dto

// CreateShiftRequest schedules a staff shift. Day accepts English or Spanish
// names; start/end are "HH:mm" and the shift must not cross midnight.
type CreateShiftRequest struct {
	StaffID  string  `json:"staff_id" validate:"required"`
	Day      string  `json:"day" validate:"required"`
	Start    string  `json:"start" validate:"required"`
	End      string  `json:"end" validate:"required"`
	Position *string `json:"position,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// UpdateShiftRequest patches shift fields. Nil fields are left untouched;
// the edited shift is revalidated against the rest of the schedule.
type UpdateShiftRequest struct {
	Day      *string `json:"day,omitempty"`
	Start    *string `json:"start,omitempty"`
	End      *string `json:"end,omitempty"`
	Position *string `json:"position,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

package dto

import "github.com/mesa-admin/resto-bo-api/internal/models"

// DashboardPayload is the composite back-office landing page response.
type DashboardPayload struct {
	RestaurantID   string                   `json:"restaurant_id"`
	GeneratedAt    string                   `json:"generated_at"`
	SalesToday     models.DailySalesSummary `json:"sales_today"`
	SalesWeek      []models.DailySalesSummary `json:"sales_week"`
	TopItems       []models.TopMenuItem     `json:"top_items"`
	ShiftsToday    []models.StaffShift      `json:"shifts_today"`
	ScheduleHealth ScheduleHealthPayload    `json:"schedule_health"`
}

// ScheduleHealthPayload summarises this week's schedule validation state.
type ScheduleHealthPayload struct {
	Valid       bool     `json:"valid"`
	InvalidDays []string `json:"invalid_days,omitempty"`
	Conflicts   int      `json:"conflicts"`
	Violations  int      `json:"violations"`
}

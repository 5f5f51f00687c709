package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesa-admin/resto-bo-api/internal/service"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/response"
)

// DashboardHandler serves the aggregated back-office overview.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Overview godoc
// @Summary Dashboard overview
// @Description Returns today's sales, weekly totals, top items, today's shifts, and schedule health
// @Tags Dashboard
// @Produce json
// @Param restaurant_id query string false "Restaurant ID (owners only)"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}

	payload, err := h.service.Overview(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payload, nil)
}

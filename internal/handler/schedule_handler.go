package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/service"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/response"
)

// ScheduleHandler exposes the week validation endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Validate godoc
// @Summary Validate a weekly schedule
// @Description Checks the submitted week for overlapping shifts and ranges outside business hours without persisting anything
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ValidateScheduleRequest true "Week payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/validate [post]
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req dto.ValidateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.RestaurantID == "" {
		req.RestaurantID = restaurantScope(c)
	}

	report, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// WeekReport godoc
// @Summary Validate the stored week
// @Description Runs the validator against the restaurant's persisted shifts and business hours
// @Tags Schedule
// @Produce json
// @Param restaurant_id query string false "Restaurant ID (owners only)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/week [get]
func (h *ScheduleHandler) WeekReport(c *gin.Context) {
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}

	report, err := h.service.WeekReport(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

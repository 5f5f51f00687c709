package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	"github.com/mesa-admin/resto-bo-api/internal/service"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/response"
)

// RestaurantHandler manages restaurant and business hours endpoints.
type RestaurantHandler struct {
	service *service.RestaurantService
}

// NewRestaurantHandler constructs handler.
func NewRestaurantHandler(svc *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: svc}
}

// List godoc
// @Summary List restaurants
// @Tags Restaurants
// @Produce json
// @Param search query string false "Search by name"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	var filter models.RestaurantFilter
	filter.Search = c.Query("search")
	if active := c.Query("active"); active != "" {
		if parsed, err := strconv.ParseBool(active); err == nil {
			filter.Active = &parsed
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	restaurants, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurants, pagination)
}

// Get godoc
// @Summary Get restaurant by ID
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurant, nil)
}

// Create godoc
// @Summary Create restaurant
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param payload body dto.CreateRestaurantRequest true "Restaurant payload"
// @Success 201 {object} response.Envelope
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	restaurant, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, restaurant)
}

// Update godoc
// @Summary Update restaurant
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param payload body dto.UpdateRestaurantRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req dto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	restaurant, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurant, nil)
}

// Deactivate godoc
// @Summary Deactivate restaurant
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 204
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BusinessHours godoc
// @Summary Get business hours
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id}/hours [get]
func (h *RestaurantHandler) BusinessHours(c *gin.Context) {
	hours, err := h.service.BusinessHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hours, nil)
}

// SetBusinessHours godoc
// @Summary Replace business hours
// @Description Upserts the submitted days; days marked closed need no window
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param payload body dto.SetBusinessHoursRequest true "Hours payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /restaurants/{id}/hours [put]
func (h *RestaurantHandler) SetBusinessHours(c *gin.Context) {
	var req dto.SetBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	hours, err := h.service.SetBusinessHours(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hours, nil)
}

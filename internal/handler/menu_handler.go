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

// MenuHandler manages menu item endpoints.
type MenuHandler struct {
	service *service.MenuService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{service: svc}
}

// List godoc
// @Summary List menu items
// @Tags Menu
// @Produce json
// @Param category query string false "Filter by category"
// @Param available query bool false "Filter by availability"
// @Param search query string false "Search by name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	var filter models.MenuFilter
	filter.RestaurantID = restaurantScope(c)
	if filter.RestaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}
	filter.Category = c.Query("category")
	if available := c.Query("available"); available != "" {
		if parsed, err := strconv.ParseBool(available); err == nil {
			filter.Available = &parsed
		}
	}
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get menu item by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /menu/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param payload body dto.CreateMenuItemRequest true "Menu item payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /menu [post]
func (h *MenuHandler) Create(c *gin.Context) {
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}

	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	item, err := h.service.Create(c.Request.Context(), restaurantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param payload body dto.UpdateMenuItemRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /menu/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete menu item
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 204
// @Router /menu/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

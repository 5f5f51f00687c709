package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	"github.com/mesa-admin/resto-bo-api/internal/service"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/response"
)

// SalesHandler manages sale recording and aggregation endpoints.
type SalesHandler struct {
	service *service.SalesService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(svc *service.SalesService) *SalesHandler {
	return &SalesHandler{service: svc}
}

// Record godoc
// @Summary Record a sale
// @Description Persists a sale with unit prices snapshotted from the current menu
// @Tags Sales
// @Accept json
// @Produce json
// @Param payload body dto.RecordSaleRequest true "Sale payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sales [post]
func (h *SalesHandler) Record(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	sale, err := h.service.Record(c.Request.Context(), restaurantID, claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sale)
}

// List godoc
// @Summary List sales
// @Tags Sales
// @Produce json
// @Param channel query string false "Filter by channel"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter models.SaleFilter
	filter.RestaurantID = restaurantScope(c)
	if filter.RestaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}
	filter.Channel = c.Query("channel")
	var err error
	if filter.From, err = parseDateQuery(c, "from"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.To, err = parseDateQuery(c, "to"); err != nil {
		response.Error(c, err)
		return
	}
	if page, perr := strconv.Atoi(c.DefaultQuery("page", "1")); perr == nil {
		filter.Page = page
	}
	if limit, perr := strconv.Atoi(c.DefaultQuery("limit", "20")); perr == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	sales, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sales, pagination)
}

// Get godoc
// @Summary Get sale by ID
// @Tags Sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sales/{id} [get]
func (h *SalesHandler) Get(c *gin.Context) {
	sale, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sale, nil)
}

// DailySummary godoc
// @Summary Daily sales summary
// @Description Aggregates sale counts and totals per day, defaulting to the trailing week
// @Tags Sales
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /sales/summary/daily [get]
func (h *SalesHandler) DailySummary(c *gin.Context) {
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.service.DailySummary(c.Request.Context(), restaurantID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// TopItems godoc
// @Summary Top selling menu items
// @Tags Sales
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Number of items"
// @Success 200 {object} response.Envelope
// @Router /sales/summary/top-items [get]
func (h *SalesHandler) TopItems(c *gin.Context) {
	restaurantID := restaurantScope(c)
	if restaurantID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "restaurant_id required"))
		return
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit := 10
	if parsed, perr := strconv.Atoi(c.DefaultQuery("limit", "10")); perr == nil {
		limit = parsed
	}

	items, err := h.service.TopItems(c.Request.Context(), restaurantID, from, to, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, name+" must use YYYY-MM-DD")
	}
	return &parsed, nil
}

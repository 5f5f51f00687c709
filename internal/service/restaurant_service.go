package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/schedule"
)

type restaurantRepository interface {
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error)
	FindByID(ctx context.Context, id string) (*models.Restaurant, error)
	Create(ctx context.Context, rest *models.Restaurant) error
	Update(ctx context.Context, rest *models.Restaurant) error
	Deactivate(ctx context.Context, id string) error
	ListBusinessHours(ctx context.Context, restaurantID string) ([]models.BusinessHour, error)
	UpsertBusinessHour(ctx context.Context, hour *models.BusinessHour) error
}

// RestaurantService manages restaurant locations and their operating windows.
type RestaurantService struct {
	repo      restaurantRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRestaurantService constructs a RestaurantService.
func NewRestaurantService(repo restaurantRepository, validate *validator.Validate, logger *zap.Logger) *RestaurantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RestaurantService{repo: repo, validator: validate, logger: logger}
}

// List returns restaurants for the filter plus pagination metadata.
func (s *RestaurantService) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, *models.Pagination, error) {
	restaurants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list restaurants")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return restaurants, pagination, nil
}

// Get loads one restaurant.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	rest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load restaurant")
	}
	return rest, nil
}

// Create registers a new restaurant.
func (s *RestaurantService) Create(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restaurant payload")
	}
	rest := &models.Restaurant{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Timezone: req.Timezone,
		Currency: req.Currency,
		Active:   true,
	}
	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create restaurant")
	}
	return rest, nil
}

// Update patches restaurant fields. Nil request fields are left untouched.
func (s *RestaurantService) Update(ctx context.Context, id string, req dto.UpdateRestaurantRequest) (*models.Restaurant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restaurant payload")
	}
	rest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rest.Name = *req.Name
	}
	if req.Address != nil {
		rest.Address = req.Address
	}
	if req.Phone != nil {
		rest.Phone = req.Phone
	}
	if req.Timezone != nil {
		rest.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		rest.Currency = *req.Currency
	}
	if req.Active != nil {
		rest.Active = *req.Active
	}

	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update restaurant")
	}
	return rest, nil
}

// Deactivate soft-deletes a restaurant.
func (s *RestaurantService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate restaurant")
	}
	return nil
}

// BusinessHours returns a restaurant's stored operating windows Monday-first.
func (s *RestaurantService) BusinessHours(ctx context.Context, restaurantID string) ([]models.BusinessHour, error) {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}
	hours, err := s.repo.ListBusinessHours(ctx, restaurantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load business hours")
	}
	return hours, nil
}

// SetBusinessHours upserts operating windows for the listed days. Open must
// precede close on open days; closed days skip the window check entirely.
func (s *RestaurantService) SetBusinessHours(ctx context.Context, restaurantID string, req dto.SetBusinessHoursRequest) ([]models.BusinessHour, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid business hours payload")
	}
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}

	seen := make(map[schedule.Day]bool, len(req.Hours))
	hours := make([]models.BusinessHour, 0, len(req.Hours))
	for _, payload := range req.Hours {
		day, err := schedule.ParseDay(payload.Day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", payload.Day))
		}
		if seen[day] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %s listed twice", day))
		}
		seen[day] = true

		hour := models.BusinessHour{
			RestaurantID: restaurantID,
			DayOfWeek:    day.String(),
			Closed:       payload.Closed,
		}
		if !payload.Closed {
			open, err := schedule.ParseTimeOfDay(payload.Open)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("open time for %s: %v", day, err))
			}
			closing, err := schedule.ParseTimeOfDay(payload.Close)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("close time for %s: %v", day, err))
			}
			window, err := schedule.NewWindow(open, closing)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("window for %s: %v", day, err))
			}
			hour.OpenTime = window.Open.String()
			hour.CloseTime = window.Close.String()
		}
		hours = append(hours, hour)
	}

	for i := range hours {
		if err := s.repo.UpsertBusinessHour(ctx, &hours[i]); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store business hours")
		}
	}
	return hours, nil
}

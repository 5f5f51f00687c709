package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/memcache"
)

type menuRepository interface {
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, int, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	ExistsByName(ctx context.Context, restaurantID, name, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}

// menuListPayload is the cached shape for list responses.
type menuListPayload struct {
	Items []models.MenuItem `json:"items"`
	Total int               `json:"total"`
}

// MenuServiceConfig tunes menu caching.
type MenuServiceConfig struct {
	CacheTTL      time.Duration
	LocalCacheTTL time.Duration
}

// MenuService manages menu items. List reads go through a process-local TTL
// cache backed by Redis; writes invalidate both layers so other instances
// converge on the next read.
type MenuService struct {
	repo      menuRepository
	cache     *CacheService
	local     *memcache.Cache
	validator *validator.Validate
	logger    *zap.Logger
	cfg       MenuServiceConfig
}

// NewMenuService constructs a MenuService.
func NewMenuService(repo menuRepository, cache *CacheService, local *memcache.Cache, validate *validator.Validate, logger *zap.Logger, cfg MenuServiceConfig) *MenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MenuService{repo: repo, cache: cache, local: local, validator: validate, logger: logger, cfg: cfg}
}

// List returns menu items for the filter plus pagination metadata, consulting
// the local cache, then Redis, then the database.
func (s *MenuService) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, *models.Pagination, error) {
	key := menuListKey(filter)

	if s.local != nil {
		if cached, ok := s.local.Get(key); ok {
			if payload, ok := cached.(menuListPayload); ok {
				return payload.Items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: payload.Total}, nil
			}
		}
	}

	var payload menuListPayload
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &payload)
		if err == nil && hit {
			s.storeLocal(key, payload)
			return payload.Items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: payload.Total}, nil
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list menu items")
	}
	payload = menuListPayload{Items: items, Total: total}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("menu cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.storeLocal(key, payload)

	return items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get loads one menu item.
func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "menu item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load menu item")
	}
	return item, nil
}

// Create adds a menu item. Item names are unique per restaurant.
func (s *MenuService) Create(ctx context.Context, restaurantID string, req dto.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid menu item payload")
	}
	if restaurantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "restaurant id is required")
	}

	exists, err := s.repo.ExistsByName(ctx, restaurantID, req.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check menu item name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("menu item %q already exists", req.Name))
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Category:     req.Category,
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		ImageURL:     req.ImageURL,
		Available:    available,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create menu item")
	}
	s.invalidate(ctx, restaurantID)
	return item, nil
}

// Update patches a menu item. Nil request fields are left untouched.
func (s *MenuService) Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid menu item payload")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != item.Name {
		exists, err := s.repo.ExistsByName(ctx, item.RestaurantID, *req.Name, item.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check menu item name")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("menu item %q already exists", *req.Name))
		}
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update menu item")
	}
	s.invalidate(ctx, item.RestaurantID)
	return item, nil
}

// Delete removes a menu item. Historical sales keep their price snapshots.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete menu item")
	}
	s.invalidate(ctx, item.RestaurantID)
	return nil
}

func (s *MenuService) storeLocal(key string, payload menuListPayload) {
	if s.local == nil {
		return
	}
	s.local.Set(key, payload, s.cfg.LocalCacheTTL)
}

// invalidate drops both cache layers for the restaurant. The local layer has
// no pattern delete, so it is flushed wholesale; entries are small and
// short-lived.
func (s *MenuService) invalidate(ctx context.Context, restaurantID string) {
	if s.local != nil {
		s.local.Flush()
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "menu:"+restaurantID+":*"); err != nil {
			s.logger.Warn("menu cache invalidation failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
		}
	}
}

func menuListKey(filter models.MenuFilter) string {
	available := "any"
	if filter.Available != nil {
		available = fmt.Sprintf("%t", *filter.Available)
	}
	return fmt.Sprintf("menu:%s:%s:%s:%s:%d:%d:%s:%s",
		filter.RestaurantID, filter.Category, available, filter.Search,
		filter.Page, filter.PageSize, filter.SortBy, filter.SortOrder)
}

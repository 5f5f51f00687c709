package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
	"github.com/mesa-admin/resto-bo-api/pkg/memcache"
)

type mockMenuRepo struct {
	items     []models.MenuItem
	nameTaken bool
	listCalls int
	created   *models.MenuItem
	updated   *models.MenuItem
	deleted   string
}

func (m *mockMenuRepo) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, int, error) {
	m.listCalls++
	return m.items, len(m.items), nil
}

func (m *mockMenuRepo) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockMenuRepo) ExistsByName(ctx context.Context, restaurantID, name, excludeID string) (bool, error) {
	return m.nameTaken, nil
}

func (m *mockMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	item.ID = "new-item"
	m.created = item
	return nil
}

func (m *mockMenuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	m.updated = item
	return nil
}

func (m *mockMenuRepo) Delete(ctx context.Context, id string) error {
	m.deleted = id
	return nil
}

// inMemoryCacheRepo is a map-backed stand-in for the Redis repository.
type inMemoryCacheRepo struct {
	entries map[string][]byte
	deletes []string
}

func newInMemoryCacheRepo() *inMemoryCacheRepo {
	return &inMemoryCacheRepo{entries: make(map[string][]byte)}
}

func (c *inMemoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *inMemoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *inMemoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deletes = append(c.deletes, pattern)
	c.entries = make(map[string][]byte)
	return nil
}

func newMenuService(repo *mockMenuRepo, cacheRepo *inMemoryCacheRepo, local *memcache.Cache) *MenuService {
	var cache *CacheService
	if cacheRepo != nil {
		cache = NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	}
	return NewMenuService(repo, cache, local, validator.New(), zap.NewNop(), MenuServiceConfig{
		CacheTTL:      time.Minute,
		LocalCacheTTL: time.Minute,
	})
}

func TestMenuServiceListPopulatesCaches(t *testing.T) {
	repo := &mockMenuRepo{items: []models.MenuItem{{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: true}}}
	cacheRepo := newInMemoryCacheRepo()
	local := memcache.New(time.Minute, 0)
	defer local.Close()
	svc := newMenuService(repo, cacheRepo, local)
	filter := models.MenuFilter{RestaurantID: "r1", Page: 1, PageSize: 20}

	items, pagination, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, local.Len())

	// Second read must come from the local layer, not the repository.
	_, _, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestMenuServiceListFallsBackToRedis(t *testing.T) {
	repo := &mockMenuRepo{items: []models.MenuItem{{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: true}}}
	cacheRepo := newInMemoryCacheRepo()
	svc := newMenuService(repo, cacheRepo, nil)
	filter := models.MenuFilter{RestaurantID: "r1", Page: 1, PageSize: 20}

	_, _, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	// Without a local layer the second read hits Redis, still not the repo.
	_, _, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestMenuServiceCreateInvalidatesCaches(t *testing.T) {
	repo := &mockMenuRepo{}
	cacheRepo := newInMemoryCacheRepo()
	local := memcache.New(time.Minute, 0)
	defer local.Close()
	svc := newMenuService(repo, cacheRepo, local)

	_, _, err := svc.List(context.Background(), models.MenuFilter{RestaurantID: "r1", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, local.Len())

	_, err = svc.Create(context.Background(), "r1", dto.CreateMenuItemRequest{
		Category:   "Mains",
		Name:       "Enchiladas",
		PriceCents: 1250,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, local.Len())
	assert.Contains(t, cacheRepo.deletes, "menu:r1:*")
}

func TestMenuServiceCreateRejectsDuplicateName(t *testing.T) {
	repo := &mockMenuRepo{nameTaken: true}
	svc := newMenuService(repo, nil, nil)

	_, err := svc.Create(context.Background(), "r1", dto.CreateMenuItemRequest{
		Category:   "Mains",
		Name:       "Tacos",
		PriceCents: 950,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestMenuServiceUpdatePatchesFields(t *testing.T) {
	repo := &mockMenuRepo{items: []models.MenuItem{{ID: "m1", RestaurantID: "r1", Name: "Tacos", PriceCents: 950, Available: true}}}
	svc := newMenuService(repo, nil, nil)

	price := int64(1100)
	available := false
	item, err := svc.Update(context.Background(), "m1", dto.UpdateMenuItemRequest{PriceCents: &price, Available: &available})
	require.NoError(t, err)
	assert.Equal(t, int64(1100), item.PriceCents)
	assert.False(t, item.Available)
	assert.Equal(t, "Tacos", item.Name)
}

func TestMenuServiceDeleteMissing(t *testing.T) {
	svc := newMenuService(&mockMenuRepo{}, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

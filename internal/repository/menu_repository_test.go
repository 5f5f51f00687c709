package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesa-admin/resto-bo-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestMenuRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMenuRepository(db)

	rows := sqlmock.NewRows([]string{"id", "restaurant_id", "category", "name", "description", "price_cents", "image_url", "available", "created_at", "updated_at"}).
		AddRow("m1", "r1", "MAINS", "Tacos al pastor", nil, 1250, nil, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, restaurant_id, category, name, description, price_cents, image_url, available, created_at, updated_at FROM menu_items WHERE 1=1 AND restaurant_id = $1 ORDER BY category ASC, name ASC LIMIT 50 OFFSET 0")).
		WithArgs("r1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM menu_items WHERE 1=1 AND restaurant_id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), models.MenuFilter{RestaurantID: "r1"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Tacos al pastor", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMenuRepository(db)

	mock.ExpectExec("INSERT INTO menu_items").
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.MenuItem{RestaurantID: "r1", Category: "MAINS", Name: "Tacos al pastor", PriceCents: 1250, Available: true}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEmpty(t, item.ID)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items WHERE id = $1")).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepositoryExistsByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMenuRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu_items WHERE restaurant_id = $1 AND LOWER(name) = LOWER($2) LIMIT 1")).
		WithArgs("r1", "Tacos al pastor").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))

	exists, err := repo.ExistsByName(context.Background(), "r1", "Tacos al pastor", "")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same owner excluded during update.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu_items WHERE restaurant_id = $1 AND LOWER(name) = LOWER($2) LIMIT 1")).
		WithArgs("r1", "Tacos al pastor").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))

	exists, err = repo.ExistsByName(context.Background(), "r1", "Tacos al pastor", "m1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesa-admin/resto-bo-api/internal/dto"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	appErrors "github.com/mesa-admin/resto-bo-api/pkg/errors"
)

type mockUserRepo struct {
	users       map[string]*models.User
	emailTaken  bool
	created     *models.User
	updated     *models.User
	deactivated string
	revoked     []string
	auditLogs   []*models.AuditLog
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = "new-user"
	m.created = user
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = user
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id string) error {
	m.deactivated = id
	return nil
}

func (m *mockUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revoked = append(m.revoked, userID)
	return nil
}

func (m *mockUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func TestUserServiceInvite(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	restaurantID := "r1"
	res, err := svc.Invite(context.Background(), "owner-1", dto.InviteUserRequest{
		Email:        "staff@example.com",
		FullName:     "New Staff",
		Role:         "STAFF",
		RestaurantID: &restaurantID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TemporaryPassword)
	assert.True(t, res.User.MustChangePassword)
	assert.True(t, res.User.Active)

	// The stored hash must verify against the returned temporary password.
	require.NotNil(t, repo.created)
	err = bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte(res.TemporaryPassword))
	assert.NoError(t, err)

	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserInvite, repo.auditLogs[0].Action)
}

func TestUserServiceInviteStaffRequiresRestaurant(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), validator.New(), zap.NewNop())

	_, err := svc.Invite(context.Background(), "owner-1", dto.InviteUserRequest{
		Email:    "staff@example.com",
		FullName: "New Staff",
		Role:     "STAFF",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUserServiceInviteDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.emailTaken = true
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	_, err := svc.Invite(context.Background(), "owner-1", dto.InviteUserRequest{
		Email:    "owner@example.com",
		FullName: "Second Owner",
		Role:     "OWNER",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUserServiceUpdateDeactivationRevokesSessions(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u1"] = &models.User{ID: "u1", Email: "staff@example.com", Role: models.RoleStaff, Active: true}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	inactive := false
	user, err := svc.Update(context.Background(), "owner-1", "u1", dto.UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.Contains(t, repo.revoked, "u1")
}

func TestUserServiceDeactivate(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u1"] = &models.User{ID: "u1", Email: "staff@example.com", Role: models.RoleStaff, Active: true}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Deactivate(context.Background(), "owner-1", "u1"))
	assert.Equal(t, "u1", repo.deactivated)
	assert.Contains(t, repo.revoked, "u1")
}

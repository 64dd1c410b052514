package services

import (
	"context"
	"testing"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*authFixture, UserService) {
	t.Helper()

	af := newAuthFixture(t)
	hasher := security.NewHasher(af.cfg.Security.Argon2.Memory, af.cfg.Security.Argon2.Time, af.cfg.Security.Argon2.Threads)
	logs := NewLogService(af.logRepo, af.audit, af.cfg)
	users := NewUserService(af.users, af.auth, logs, hasher)
	return af, users
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Parallel()

	af, users := newUserFixture(t)
	ctx := context.Background()
	user := af.register(t, "alice", "password1")

	require.NoError(t, users.UpdateRole(ctx, testRC(), user.ID, models.UserRoleAdmin))

	updated, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, updated.Role)

	// Неизвестная роль отклоняется до обращения к базе
	err = users.UpdateRole(ctx, testRC(), user.ID, models.UserRole("SUPERHERO"))
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidUserRole))

	// Смена роли оставляет след в аудите
	entries := af.logRepo.all()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[len(entries)-1].Message, "ADMIN")
}

func TestUserService_UpdateUsername(t *testing.T) {
	t.Parallel()

	af, users := newUserFixture(t)
	ctx := context.Background()
	alice := af.register(t, "alice", "password1")
	af.register(t, "bob", "password2")

	// Занятое и зарезервированное имена отклоняются
	err := users.UpdateUsername(ctx, testRC(), alice.ID, "bob")
	assert.True(t, appErrors.Is(err, appErrors.ErrUsernameTaken))
	err = users.UpdateUsername(ctx, testRC(), alice.ID, "root")
	assert.True(t, appErrors.Is(err, appErrors.ErrUsernameBlocked))

	require.NoError(t, users.UpdateUsername(ctx, testRC(), alice.ID, "alice2"))
	updated, err := users.GetByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
}

func TestUserService_UpdatePassword(t *testing.T) {
	t.Parallel()

	af, users := newUserFixture(t)
	ctx := context.Background()
	user := af.register(t, "alice", "password1")

	require.NoError(t, users.UpdatePassword(ctx, testRC(), user.ID, "brand-new-pass"))

	assert.False(t, af.auth.CanLogin(ctx, testRC(), "alice", "password1"))
	assert.True(t, af.auth.CanLogin(ctx, testRC(), "alice", "brand-new-pass"))
}

func TestUserService_SetAPIAccessAndProfilePicture(t *testing.T) {
	t.Parallel()

	af, users := newUserFixture(t)
	ctx := context.Background()
	user := af.register(t, "alice", "password1")

	require.NoError(t, users.SetAPIAccess(ctx, testRC(), user.ID, true))
	updated, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.AllowAPIAccess)

	require.NoError(t, users.UpdateProfilePicture(user.ID, "custom_pic"))
	updated, err = users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "custom_pic", updated.ProfilePicture)

	// Пустая строка откатывает на дефолтную картинку
	require.NoError(t, users.UpdateProfilePicture(user.ID, ""))
	updated, err = users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfilePicture, updated.ProfilePicture)
}

func TestUserService_DeleteAndList(t *testing.T) {
	t.Parallel()

	af, users := newUserFixture(t)
	ctx := context.Background()
	alice := af.register(t, "alice", "password1")
	af.register(t, "bob", "password2")

	list, total, err := users.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	require.NoError(t, users.Delete(ctx, testRC(), alice.ID))

	_, err = users.GetByID(alice.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))

	exists, err := users.Exists("alice")
	require.NoError(t, err)
	assert.False(t, exists)

	err = users.Delete(ctx, testRC(), alice.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
}

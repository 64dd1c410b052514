package services

import (
	"context"
	"testing"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type banFixture struct {
	*authFixture
	bans    BanService
	banRepo *fakeBanRepo
	subs    *fakeSubscriberRepo
}

func newBanFixture(t *testing.T) *banFixture {
	t.Helper()

	af := newAuthFixture(t)
	banRepo := newFakeBanRepo(af.users)
	subs := newFakeSubscriberRepo()

	logs := NewLogService(af.logRepo, af.audit, af.cfg)
	bans := NewBanService(banRepo, af.users, subs, af.auth, logs)

	return &banFixture{authFixture: af, bans: bans, banRepo: banRepo, subs: subs}
}

func TestBanService_BanAndUnban(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()
	user := f.register(t, "victim", "password1")

	banned, err := f.bans.IsBanned(user.ID)
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, user.ID, "spam"))

	banned, err = f.bans.IsBanned(user.ID)
	require.NoError(t, err)
	assert.True(t, banned)

	reason, active, err := f.bans.BanReason(user.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, "spam", reason)

	// Снятие бана деактивирует запись, но не удаляет историю
	require.NoError(t, f.bans.Unban(ctx, testRC(), nil, user.ID))
	banned, err = f.bans.IsBanned(user.ID)
	require.NoError(t, err)
	assert.False(t, banned)
	assert.Equal(t, 1, f.banRepo.totalRows())

	_, active, err = f.bans.BanReason(user.ID)
	require.NoError(t, err)
	assert.False(t, active)

	// Unban незабаненного - no-op
	assert.NoError(t, f.bans.Unban(ctx, testRC(), nil, user.ID))
}

func TestBanService_DoubleBanRejected(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()
	user := f.register(t, "victim", "password1")

	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, user.ID, "first"))

	err := f.bans.Ban(ctx, testRC(), nil, user.ID, "second")
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyBanned))
	assert.Equal(t, 1, f.banRepo.totalRows(), "второй активной записи не появилось")

	// Причина осталась от первого бана
	reason, _, err := f.bans.BanReason(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", reason)
}

func TestBanService_DefaultReasonAndMissingUser(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()
	user := f.register(t, "victim", "password1")

	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, user.ID, ""))
	reason, _, err := f.bans.BanReason(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "no-reason", reason)

	err = f.bans.Ban(ctx, testRC(), nil, 999, "whatever")
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
}

func TestBanService_IssuerFromSession(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()
	admin := f.register(t, "moderator1", "password1")
	victim := f.register(t, "victim", "password2")

	sess := f.manager.Open("")
	cookies := newFakeCookies()
	require.NoError(t, f.auth.Login(ctx, testRC(), sess, cookies, "moderator1", "password1", false))

	require.NoError(t, f.bans.Ban(ctx, testRC(), sess, victim.ID, "abuse"))

	ban, err := f.banRepo.FindActiveByUserID(victim.ID)
	require.NoError(t, err)
	require.NotNil(t, ban.BannedByID)
	assert.Equal(t, admin.ID, *ban.BannedByID)
}

func TestBanService_ClosesSubscriptionsAndLogs(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()
	user := f.register(t, "victim", "password1")

	require.NoError(t, f.subs.Create(&models.NotificationSubscriber{
		Endpoint:       "https://push.example/ep1",
		PublicKey:      "pk",
		AuthToken:      "at",
		SubscribedTime: time.Now(),
		Status:         models.SubscriberStatusOpen,
		UserID:         user.ID,
	}))

	before := len(f.logRepo.all())
	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, user.ID, "spam"))

	open, err := f.subs.FindOpenByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, open, "открытых подписок после бана не остается")

	entries := f.logRepo.all()
	require.Len(t, entries, before+1)
	assert.Equal(t, models.LogLevelWarning, entries[len(entries)-1].Level)
	assert.Contains(t, entries[len(entries)-1].Message, "victim")
}

func TestBanService_BannedUsersPagination(t *testing.T) {
	t.Parallel()

	f := newBanFixture(t)
	ctx := context.Background()

	first := f.register(t, "banned1", "password1")
	second := f.register(t, "banned2", "password2")
	f.register(t, "clean", "password3")

	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, first.ID, "r1"))
	require.NoError(t, f.bans.Ban(ctx, testRC(), nil, second.ID, "r2"))

	users, total, err := f.bans.BannedUsers(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = f.bans.BannedUsers(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)
}

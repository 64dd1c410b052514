package services

import (
	"context"
	"testing"
	"time"

	"adminkit_backend/internal/config"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Logging.DBEnabled = true
	cfg.Logging.Level = models.LogLevelInfo
	cfg.Security.AntiLogSecret = "antilog-test-secret"
	cfg.Security.AntiLogCookieName = "test_antilog"
	return cfg
}

func TestLogService_PersistsUnread(t *testing.T) {
	t.Parallel()

	logRepo := newFakeLogRepo()
	svc := NewLogService(logRepo, newFakeAuditRepo(), testLogConfig())
	rc := RequestContext{IP: "10.0.0.1", UserAgent: "test-agent"}

	err := svc.Log(context.Background(), rc, 7, "auth", "User logged in", models.LogLevelCritical)
	require.NoError(t, err)

	entries := logRepo.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "auth", entries[0].Name)
	assert.Equal(t, models.LogStatusUnread, entries[0].Status)
	assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, uint(7), *entries[0].UserID)
}

func TestLogService_SuppressionFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Текст с "Connection refused" отбрасывается
	t.Run("connection refused", func(t *testing.T) {
		logRepo := newFakeLogRepo()
		svc := NewLogService(logRepo, newFakeAuditRepo(), testLogConfig())

		err := svc.Log(ctx, RequestContext{}, 0, "db", "dial tcp: Connection refused", models.LogLevelCritical)
		require.NoError(t, err)
		assert.Empty(t, logRepo.all())
	})

	// Активный anti-log режим отбрасывает запись
	t.Run("anti-log", func(t *testing.T) {
		logRepo := newFakeLogRepo()
		svc := NewLogService(logRepo, newFakeAuditRepo(), testLogConfig())

		err := svc.Log(ctx, RequestContext{AntiLog: true}, 0, "auth", "User logged in", models.LogLevelCritical)
		require.NoError(t, err)
		assert.Empty(t, logRepo.all())
	})

	// Глобальное отключение записи в БД
	t.Run("db disabled", func(t *testing.T) {
		logRepo := newFakeLogRepo()
		cfg := testLogConfig()
		cfg.Logging.DBEnabled = false
		svc := NewLogService(logRepo, newFakeAuditRepo(), cfg)

		err := svc.Log(ctx, RequestContext{}, 0, "auth", "User logged in", models.LogLevelCritical)
		require.NoError(t, err)
		assert.Empty(t, logRepo.all())
	})

	// Уровень выше порога (менее серьезный) отбрасывается
	t.Run("level threshold", func(t *testing.T) {
		logRepo := newFakeLogRepo()
		cfg := testLogConfig()
		cfg.Logging.Level = models.LogLevelWarning
		svc := NewLogService(logRepo, newFakeAuditRepo(), cfg)

		require.NoError(t, svc.Log(ctx, RequestContext{}, 0, "auth", "info entry", models.LogLevelInfo))
		assert.Empty(t, logRepo.all())

		// Записи на границе и серьезнее проходят
		require.NoError(t, svc.Log(ctx, RequestContext{}, 0, "auth", "warning entry", models.LogLevelWarning))
		require.NoError(t, svc.Log(ctx, RequestContext{}, 0, "auth", "critical entry", models.LogLevelCritical))
		assert.Len(t, logRepo.all(), 2)
	})
}

func TestLogService_IsAntiLogActive(t *testing.T) {
	t.Parallel()

	cfg := testLogConfig()
	svc := NewLogService(newFakeLogRepo(), newFakeAuditRepo(), cfg)

	signed := func(secret string, active bool) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"antilog": active})
		raw, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return raw
	}

	// Без куки режим неактивен
	assert.False(t, svc.IsAntiLogActive(newFakeCookies()))

	// Валидная подпись настроенным секретом
	cookies := newFakeCookies()
	cookies.Set(cfg.Security.AntiLogCookieName, signed(cfg.Security.AntiLogSecret, true), time.Time{})
	assert.True(t, svc.IsAntiLogActive(cookies))

	// Подпись чужим секретом отклоняется
	forged := newFakeCookies()
	forged.Set(cfg.Security.AntiLogCookieName, signed("wrong-secret", true), time.Time{})
	assert.False(t, svc.IsAntiLogActive(forged))

	// Валидная подпись, но antilog=false
	inactive := newFakeCookies()
	inactive.Set(cfg.Security.AntiLogCookieName, signed(cfg.Security.AntiLogSecret, false), time.Time{})
	assert.False(t, svc.IsAntiLogActive(inactive))
}

func TestLogService_MarkReadFlow(t *testing.T) {
	t.Parallel()

	logRepo := newFakeLogRepo()
	svc := NewLogService(logRepo, newFakeAuditRepo(), testLogConfig())
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, RequestContext{}, 0, "auth", "first", models.LogLevelCritical))
	require.NoError(t, svc.Log(ctx, RequestContext{}, 0, "auth", "second", models.LogLevelCritical))

	unread, err := svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	entries, _, err := svc.GetLogs(repositories.LogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, svc.MarkRead(entries[0].ID))
	unread, err = svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	updated, err := svc.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err = svc.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Несуществующая запись
	err = svc.MarkRead(999)
	assert.Error(t, err)
}

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_RequestAndUserID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Пустой контекст: нулевые значения
	assert.Equal(t, "", GetRequestID(ctx))
	assert.Equal(t, uint(0), GetUserID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	ctx = WithUserID(ctx, 42)

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, uint(42), GetUserID(ctx))

	// FromContext отдает рабочий логгер с полями из контекста
	require.NotNil(t, FromContext(ctx))
}

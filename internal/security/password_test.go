package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Быстрые параметры для тестов: боевые значения памяти здесь ни к чему.
func testHasher() *Hasher {
	return NewHasher(8*1024, 1, 1)
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := testHasher()

	// 1. Хешируем
	hash, err := h.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "хеш должен быть в PHC формате")

	// 2. Верный пароль проходит, неверный - нет
	assert.True(t, h.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, h.VerifyPassword("wrong password", hash))
	assert.False(t, h.VerifyPassword("", hash))
}

func TestHasher_UniqueSaltPerHash(t *testing.T) {
	t.Parallel()

	h := testHasher()

	first, err := h.HashPassword("same-password")
	require.NoError(t, err)
	second, err := h.HashPassword("same-password")
	require.NoError(t, err)

	// Соль случайная, поэтому два хеша одного пароля различаются
	assert.NotEqual(t, first, second)
	assert.True(t, h.VerifyPassword("same-password", first))
	assert.True(t, h.VerifyPassword("same-password", second))
}

func TestHasher_VerifyGarbageHash(t *testing.T) {
	t.Parallel()

	h := testHasher()

	assert.False(t, h.VerifyPassword("password", "not-a-hash"))
	assert.False(t, h.VerifyPassword("password", ""))
	assert.False(t, h.VerifyPassword("password", "$argon2id$v=19$m=8192,t=1,p=1$broken"))
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	token, err := RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	other, err := RandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestRandomPassword(t *testing.T) {
	t.Parallel()

	password, err := RandomPassword()
	require.NoError(t, err)
	assert.NotEmpty(t, password)

	other, err := RandomPassword()
	require.NoError(t, err)
	assert.NotEqual(t, password, other)
}

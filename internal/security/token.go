package security

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken возвращает случайную hex-строку указанной длины (в символах).
func RandomToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}

	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf)[:length], nil
}

// RandomPassword возвращает случайный пароль: 32 случайных байта,
// закодированных в hex. Используется при сбросе пароля администратором.
func RandomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

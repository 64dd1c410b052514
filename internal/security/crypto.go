package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// Encryptor - симметричное шифрование значений сессии.
// Ключ выводится из app_secret один раз при создании.
//
// Деривация использует ПУСТУЮ соль. Смена соли ломает расшифровку уже
// сохраненных значений, поэтому поведение сохранено как есть.
type Encryptor struct {
	key []byte
}

const (
	pbkdf2Iterations = 10000
	keyLength        = 32
	ivLength         = aes.BlockSize // 16
)

func NewEncryptor(secret string) *Encryptor {
	return &Encryptor{
		key: pbkdf2.Key([]byte(secret), []byte{}, pbkdf2Iterations, keyLength, sha256.New),
	}
}

// EncryptAES шифрует строку: AES-128-CBC, случайный IV на каждый вызов,
// IV приклеивается перед шифртекстом, результат в base64.
// Два вызова с одинаковым входом дают разный выход.
func (e *Encryptor) EncryptAES(plaintext string) (string, error) {
	// 128-битный блочный шифр: используются первые 16 байт ключа
	block, err := aes.NewCipher(e.key[:16])
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(append(iv, ciphertext...)), nil
}

// DecryptAES расшифровывает значение. Возвращает (nil, false) при любом
// сбое (битый base64, неверный ключ, кривой паддинг) вместо ошибки -
// вызывающий сам решает, что делать с нечитаемым значением.
func (e *Encryptor) DecryptAES(encoded string) ([]byte, bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	if len(raw) < ivLength || (len(raw)-ivLength)%aes.BlockSize != 0 || len(raw) == ivLength {
		return nil, false
	}

	block, err := aes.NewCipher(e.key[:16])
	if err != nil {
		return nil, false
	}

	iv := raw[:ivLength]
	ciphertext := raw[ivLength:]

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok {
		return nil, false
	}
	return unpadded, true
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, false
		}
	}
	return data[:len(data)-padding], true
}

package session

import (
	"context"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/security"

	"github.com/google/uuid"
)

// Имена ключей сессии, которыми оперирует аутентификация.
const (
	KeyUserToken      = "user-token"
	KeyUserIdentifier = "user-identifier"
)

// Manager создает сессии, привязанные к id из куки.
type Manager struct {
	store Store
	enc   *security.Encryptor
	ttl   time.Duration
}

func NewManager(store Store, enc *security.Encryptor, ttl time.Duration) *Manager {
	return &Manager{store: store, enc: enc, ttl: ttl}
}

// Open возвращает сессию для существующего id (из куки) или ленивую
// новую: id генерируется при первой записи, пустые сессии не создаются.
func (m *Manager) Open(existingID string) *Session {
	return &Session{
		manager: m,
		id:      existingID,
		started: existingID != "",
	}
}

// Session - per-request обертка над Store: все значения шифруются
// перед записью и расшифровываются при чтении.
type Session struct {
	manager *Manager
	id      string
	started bool
}

// ID возвращает идентификатор сессии ("" если сессия не начата).
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Started() bool {
	return s.started
}

// start создает id сессии при первой записи.
func (s *Session) start() {
	if !s.started {
		s.id = uuid.NewString()
		s.started = true
	}
}

// Set шифрует значение и сохраняет его под именем name.
func (s *Session) Set(ctx context.Context, name, value string) error {
	s.start()

	encrypted, err := s.manager.enc.EncryptAES(value)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.manager.store.Set(ctx, s.id, name, encrypted, s.manager.ttl); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// Value читает и расшифровывает значение. Отсутствующий ключ - это def.
// Нерасшифровываемое значение означает битую или подмененную сессию:
// сессия уничтожается, наружу уходит внутренняя ошибка.
func (s *Session) Value(ctx context.Context, name, def string) (string, error) {
	if !s.started {
		return def, nil
	}

	raw, ok, err := s.manager.store.Get(ctx, s.id, name)
	if err != nil {
		return "", appErrors.InternalError(err)
	}
	if !ok {
		return def, nil
	}

	plaintext, ok := s.manager.enc.DecryptAES(raw)
	if !ok {
		_ = s.Destroy(ctx)
		return "", appErrors.ErrSessionCorrupted
	}
	return string(plaintext), nil
}

// Has проверяет наличие сырого (нерасшифрованного) значения.
func (s *Session) Has(ctx context.Context, name string) bool {
	if !s.started {
		return false
	}
	ok, err := s.manager.store.Has(ctx, s.id, name)
	if err != nil {
		return false
	}
	return ok
}

// Destroy уничтожает сессию (no-op если она не начата).
func (s *Session) Destroy(ctx context.Context) error {
	if !s.started {
		return nil
	}
	err := s.manager.store.Destroy(ctx, s.id)
	s.started = false
	s.id = ""
	if err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store - низкоуровневое хранилище сессий: key/value строки под id сессии.
// Значения приходят уже зашифрованными, хранилище про это не знает.
type Store interface {
	Get(ctx context.Context, sessionID, name string) (string, bool, error)
	Set(ctx context.Context, sessionID, name, value string, ttl time.Duration) error
	Has(ctx context.Context, sessionID, name string) (bool, error)
	Destroy(ctx context.Context, sessionID string) error
}

// RedisStore хранит сессию как hash "session:<id>" с общим TTL.
// Хранилище разделяемое, поэтому значения шифруются до записи -
// компрометация Redis не раскрывает токены.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) Get(ctx context.Context, sessionID, name string) (string, bool, error) {
	raw, err := s.client.HGet(ctx, sessionKey(sessionID), name).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, name, value string, ttl time.Duration) error {
	key := sessionKey(sessionID)
	if err := s.client.HSet(ctx, key, name, value).Err(); err != nil {
		return err
	}
	// Каждая запись продлевает сессию целиком (sliding TTL)
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Has(ctx context.Context, sessionID, name string) (bool, error) {
	ok, err := s.client.HExists(ctx, sessionKey(sessionID), name).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

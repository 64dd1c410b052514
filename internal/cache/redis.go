package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache - кэш поверх Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient создает клиент и проверяет соединение коротким пингом.
// Возвращает nil при недоступном Redis - вызывающий деградирует на
// in-memory реализацию вместо падения на старте.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

func (c *RedisCache) Get(ctx context.Context, key string) Value {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return Miss()
	}
	return Hit(raw)
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

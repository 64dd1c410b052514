package cache

import (
	"context"
	"time"
)

// Value - обертка "значение или промах" над результатом Get.
type Value struct {
	raw   string
	found bool
}

func Hit(raw string) Value  { return Value{raw: raw, found: true} }
func Miss() Value           { return Value{} }
func (v Value) Get() string { return v.raw }
func (v Value) Found() bool { return v.found }

// Cache - TTL key/value кэш. Единственный механизм истечения - сам TTL,
// явного удаления ключей в ядре нет.
type Cache interface {
	Get(ctx context.Context, key string) Value
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

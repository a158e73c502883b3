package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается Get, когда ключа нет или он истёк.
var ErrCacheMiss = errors.New("cache: chave não encontrada")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	// Incr увеличивает счётчик; новый ключ создаётся со сроком жизни expiration.
	Incr(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

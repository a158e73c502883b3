package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCacheRepository - кеш в памяти процесса, когда Redis не настроен.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewMemoryCacheRepository(defaultExpiration, cleanupInterval time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	val, ok := r.cache.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return fmt.Sprint(val), nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	r.cache.Set(key, value, expiration)
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		r.cache.Delete(key)
	}
	return nil
}

func (r *MemoryCacheRepository) Incr(_ context.Context, key string, expiration time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.cache.Add(key, int64(1), expiration); err == nil {
		return 1, nil
	}
	return r.cache.IncrementInt64(key, 1)
}

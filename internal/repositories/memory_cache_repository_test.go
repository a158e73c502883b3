package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository_Incr(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheRepository(time.Minute, time.Minute)

	n, err := cache.Incr(ctx, "login_attempts:ana", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = cache.Incr(ctx, "login_attempts:ana", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	val, err := cache.Get(ctx, "login_attempts:ana")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
}

func TestMemoryCacheRepository_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheRepository(time.Minute, time.Minute)

	_, err := cache.Incr(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err := cache.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "истёкший счётчик начинается заново")
}

func TestMemoryCacheRepository_Del(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheRepository(time.Minute, time.Minute)

	require.NoError(t, cache.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "b", "2", time.Minute))
	require.NoError(t, cache.Del(ctx, "a", "b"))

	_, err := cache.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

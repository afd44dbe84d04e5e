package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) RefreshCache {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestRedisCache_SetGet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "token-1", 42, time.Minute))

	uid, ok, err := c.Get(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(42), uid)
}

func TestRedisCache_MissIsNotError(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)

	uid, ok, err := c.Get(context.Background(), "unknown-token")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, uid)
}

func TestRedisCache_TTLExpires(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "token-1", 42, time.Minute))

	// Перемотка времени внутри miniredis: токен должен исчезнуть.
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://"+mr.Addr(), "custom:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(context.Background(), "token-1", 7, time.Minute))
	require.True(t, mr.Exists("custom:token-1"))
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache("not-a-url", "")
	require.Error(t, err)
}

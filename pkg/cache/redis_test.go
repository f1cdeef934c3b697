package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() }) //nolint:errcheck

	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c, _ := newTestRedisCache(t)

		require.NoError(t, c.Set(ctx, "event-1", []byte("payload")))

		got, err := c.Get(ctx, "event-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("keys are namespaced", func(t *testing.T) {
		c, mr := newTestRedisCache(t)

		require.NoError(t, c.Set(ctx, "event-1", []byte("payload")))

		assert.True(t, mr.Exists(keyPrefix+"event-1"))
		assert.False(t, mr.Exists("event-1"))
	})

	t.Run("missing key", func(t *testing.T) {
		c, _ := newTestRedisCache(t)

		_, err := c.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("entries expire with the TTL", func(t *testing.T) {
		c, mr := newTestRedisCache(t)

		require.NoError(t, c.Set(ctx, "event-1", []byte("payload")))
		mr.FastForward(2 * time.Minute)

		_, err := c.Get(ctx, "event-1")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("delete", func(t *testing.T) {
		c, _ := newTestRedisCache(t)

		require.NoError(t, c.Set(ctx, "event-1", []byte("payload")))
		require.NoError(t, c.Delete(ctx, "event-1"))

		_, err := c.Get(ctx, "event-1")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("unreachable server fails fast", func(t *testing.T) {
		_, err := NewRedisCache(ctx, "127.0.0.1:1", time.Minute)
		assert.Error(t, err)
	})
}

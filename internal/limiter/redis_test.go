package limiter

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	store := NewRedisStore(client)
	defer store.Close()
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("Allow", func(t *testing.T) {
		window := time.Second

		ok, err := store.Allow(ctx, "user:789", 2, window)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Allow(ctx, "user:789", 2, window)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Allow(ctx, "user:789", 2, window)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.True(t, s.Exists(redisKeyPrefix+"user:789"))
		assert.Greater(t, s.TTL(redisKeyPrefix+"user:789"), time.Duration(0))

		s.FastForward(window + time.Millisecond)

		ok, err = store.Allow(ctx, "user:789", 2, window)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ServerDown", func(t *testing.T) {
		s.SetError("boom")
		defer s.SetError("")

		_, err := store.Allow(ctx, "user:1", 2, time.Second)
		assert.Error(t, err)
	})

	t.Run("NilClient", func(t *testing.T) {
		_, err := NewRedisStore(nil).Allow(ctx, "user:1", 1, time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
		assert.NoError(t, NewRedisStore(nil).Close())
	})
}

package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.DeletePattern(ctx, "k*"))
}

// Integration test, needs a reachable Redis in REDIS_URL.
func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if testing.Short() || url == "" {
		t.Skip("Skipping integration test")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client, slog.New(slog.DiscardHandler))
	prefix := "test:" + uuid.NewString()

	type snapshot struct {
		Completed int `json:"completed"`
		Total     int `json:"total"`
	}
	require.NoError(t, c.Set(ctx, prefix+":a", snapshot{Completed: 2, Total: 5}, time.Minute))
	require.NoError(t, c.Set(ctx, prefix+":b", snapshot{Completed: 1, Total: 5}, time.Minute))

	var got snapshot
	require.NoError(t, c.Get(ctx, prefix+":a", &got))
	assert.Equal(t, snapshot{Completed: 2, Total: 5}, got)

	require.NoError(t, c.Delete(ctx, prefix+":a"))
	assert.ErrorIs(t, c.Get(ctx, prefix+":a", &got), ErrCacheMiss)

	require.NoError(t, c.DeletePattern(ctx, prefix+":*"))
	assert.ErrorIs(t, c.Get(ctx, prefix+":b", &got), ErrCacheMiss)
}

//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/redis"
)

func TestLocker(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url, redis.WithRetry(1, 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redis.Healthcheck(client)(ctx))

	locker := redis.NewLocker(client, "test:lock:", time.Second)
	key := uuid.NewString()

	unlock, err := locker.Lock(ctx, key)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, key)
	require.ErrorIs(t, err, redis.ErrLockHeld)

	require.NoError(t, unlock(ctx))
	require.ErrorIs(t, unlock(ctx), redis.ErrLockLost)

	unlock, err = locker.Lock(ctx, key)
	require.NoError(t, err)
	time.Sleep(1500 * time.Millisecond)
	require.ErrorIs(t, unlock(ctx), redis.ErrLockLost)
}

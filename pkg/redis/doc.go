// Package redis opens go-redis clients and provides the per-key locks
// localekit uses to serialize writes to a project.
//
// It wraps [github.com/redis/go-redis/v9].
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	locker := redis.NewLocker(client, "localekit:lock:", 30*time.Second)
//	unlock, err := locker.Lock(ctx, projectID.String())
//	if errors.Is(err, redis.ErrLockHeld) {
//		// somebody else is importing into this project
//	}
//	defer unlock(ctx)
//
// Healthcheck adapts a client to a readiness probe and Shutdown to a shutdown hook.
package redis

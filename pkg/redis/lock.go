package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived exclusive locks stored in Redis.
// A lock that is not released expires after its TTL.
type Locker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewLocker creates a locker. Keys are stored as prefix + key.
// A non-positive ttl defaults to 30 seconds.
func NewLocker(client redis.UniversalClient, prefix string, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{client: client, prefix: prefix, ttl: ttl}
}

// Lock acquires key without waiting. It returns ErrLockHeld when another
// owner holds it. The returned function releases the lock and reports
// ErrLockLost when the lock had already expired.
func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	k := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.client, []string{k}, token).Int()
		if err != nil {
			return errors.Join(ErrLockLost, err)
		}
		if n == 0 {
			return ErrLockLost
		}
		return nil
	}, nil
}

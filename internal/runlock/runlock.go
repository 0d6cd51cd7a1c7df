// Package runlock serializes scrape runs through a redis lock, so a manual
// run fired during a scheduled one skips instead of double-processing.
package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKey = "jobwatch:run-lock"

// Only the owner that set the token may delete the key.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Lock is a single-holder run lock with a TTL safety net: a crashed holder's
// lock expires on its own.
type Lock struct {
	rdb   *redis.Client
	ttl   time.Duration
	token string
}

// New creates a lock with a fresh owner token.
func New(rdb *redis.Client, ttl time.Duration) *Lock {
	return &Lock{rdb: rdb, ttl: ttl, token: uuid.NewString()}
}

// Acquire attempts to take the lock. Returns false when another run holds it.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, lockKey, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock if this instance still owns it.
func (l *Lock) Release(ctx context.Context) error {
	if err := l.rdb.Eval(ctx, releaseScript, []string{lockKey}, l.token).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

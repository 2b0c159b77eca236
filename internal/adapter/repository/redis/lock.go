package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrLockHeld is returned when another instance holds the lock.
var ErrLockHeld = errors.New("lock held by another instance")

// Locker hands out cluster-wide mutexes for scheduled jobs.
type Locker struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
	prefix string
	log    zerolog.Logger
}

// NewLocker creates a Locker on client.
func NewLocker(client redis.UniversalClient, log zerolog.Logger) *Locker {
	return &Locker{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: "budgetledger:lock:",
		log:    log,
	}
}

// WithLock runs fn while holding the named lock. It makes a single attempt:
// when the lock is taken it returns ErrLockHeld without running fn. The lock
// expires after ttl even if the holder dies.
func (l *Locker) WithLock(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error {
	key := l.prefix + name
	mutex := l.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.TryLockContext(ctx); err != nil {
		if held, existsErr := l.client.Exists(ctx, key).Result(); existsErr == nil && held > 0 {
			return ErrLockHeld
		}
		return fmt.Errorf("acquire lock %s: %w", name, err)
	}

	defer func() {
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			l.log.Warn().Err(err).Str("lock", name).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}

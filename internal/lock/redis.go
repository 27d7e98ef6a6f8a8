package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces publish locks in Redis.
const KeyPrefix = "career:publish-lock:"

const (
	defaultRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another holder is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// extendScript pushes the expiry out only while the key still holds our token.
const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

// redisClient is the subset of *redis.Client the locker needs.
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a lease lock shared by every replica. A lease expires after ttl,
// which bounds how long a crashed holder can block a tenant. While the holder
// runs, the lease is renewed every ttl/3 until unlock, so a publish that
// outlives ttl stays serialized.
type RedisLocker struct {
	client redisClient
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a RedisLocker.
func NewRedisLocker(client redisClient, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{client: client, ttl: ttl, retry: defaultRetryInterval, logger: logger}
}

var _ Locker = (*RedisLocker)(nil)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Lock implements Locker, polling until the lease is free.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := KeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, k, ctx.Err())
			}
			return nil, fmt.Errorf("acquire %s: %w", k, err)
		}
		if ok {
			stop := make(chan struct{})
			done := make(chan struct{})
			go l.renew(k, token, stop, done)
			return l.unlockFunc(k, token, stop, done), nil
		}

		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, k, ctx.Err())
		case <-t.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(key, token string, stop chan struct{}, done <-chan struct{}) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			l.release(key, token)
		})
	}
}

// renew extends the lease until stop is closed or the token is no longer ours.
func (l *RedisLocker) renew(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	interval := l.ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		n, err := l.client.Eval(ctx, extendScript, []string{key}, token, l.ttl.Milliseconds()).Int64()
		cancel()
		if err != nil {
			// Retry on the next tick while the lease is still live.
			l.logger.Warn("lock renew failed",
				zap.String("event", "lock_renew_failed"),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		if n == 0 {
			l.logger.Warn("lock lease lost",
				zap.String("event", "lock_lease_lost"),
				zap.String("key", key),
			)
			return
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		// The lease still expires after ttl.
		l.logger.Warn("lock release failed",
			zap.String("event", "lock_release_failed"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 5
)

// LoginThrottle counts failed login attempts per account in Redis.
// Key format: login_fail:<email>, expiring after throttleWindow. Once the
// counter reaches throttleMaxFailures, further attempts are refused until
// the window lapses or a successful login resets it.
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Allow reports whether another attempt is permitted for key.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < throttleMaxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	k := t.key(key)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, throttleWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(k string) string {
	return "login_fail:" + k
}

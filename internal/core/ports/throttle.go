package ports

import "context"

// LoginThrottle limits repeated failed login attempts per account.
// Implementations count failures within a rolling window; once the limit
// is reached Allow reports false until the window expires.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// NopLoginThrottle never blocks. Used in tests and when Redis is absent.
type NopLoginThrottle struct{}

func (NopLoginThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (NopLoginThrottle) RecordFailure(context.Context, string) error { return nil }
func (NopLoginThrottle) Reset(context.Context, string) error         { return nil }

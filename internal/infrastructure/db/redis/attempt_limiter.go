package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockoutWindow = 15 * time.Minute

// AttemptLimiter counts failed logins per identity in Redis.
// Key format: login_attempts:<identity>
//
// Every failure refreshes the key's TTL, so an identity stays blocked until
// window has elapsed since its most recent failure.
type AttemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewAttemptLimiter creates an AttemptLimiter. maxAttempts <= 0 disables
// blocking while still counting failures.
func NewAttemptLimiter(client *redis.Client, maxAttempts int, window time.Duration) *AttemptLimiter {
	if window <= 0 {
		window = defaultLockoutWindow
	}
	return &AttemptLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked reports whether identity has reached the failure limit.
func (l *AttemptLimiter) Blocked(ctx context.Context, identity string) (bool, error) {
	if l.maxAttempts <= 0 {
		return false, nil
	}
	n, err := l.client.Get(ctx, attemptKey(identity)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attempt limiter check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, identity string) error {
	key := attemptKey(identity)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("attempt limiter record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *AttemptLimiter) Reset(ctx context.Context, identity string) error {
	if err := l.client.Del(ctx, attemptKey(identity)).Err(); err != nil {
		return fmt.Errorf("attempt limiter reset: %w", err)
	}
	return nil
}

func attemptKey(identity string) string {
	return "login_attempts:" + identity
}

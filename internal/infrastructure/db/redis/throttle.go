package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter implements a fixed-window request counter backed by
// Redis, shared across all instances behind the same store.
// Key format: throttle:<scope>:<window_number>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewFixedWindowLimiter allows up to limit requests per scope per window.
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for scope's current window and reports
// whether the request stays within the limit. The key expires with the
// window, so idle scopes cost nothing.
func (l *FixedWindowLimiter) Allow(ctx context.Context, scope string) (bool, error) {
	key := l.key(scope, time.Now())

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}

	return n <= int64(l.limit), nil
}

func (l *FixedWindowLimiter) key(scope string, ts time.Time) string {
	return fmt.Sprintf("throttle:%s:%d", scope, ts.Unix()/int64(l.window.Seconds()))
}

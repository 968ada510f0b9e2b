package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter.
// Key format: ratelimit:<scope>:<window start unix>
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, limit: int64(limit), window: window, now: time.Now}
}

// Allow counts one hit for scope. When the window is exhausted it returns
// false and the time left until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, scope string) (bool, time.Duration, error) {
	now := l.now()
	start := now.Truncate(l.window)
	key := rateLimitKey(scope, start)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}

	if incr.Val() > l.limit {
		return false, retryAfter(now, start, l.window), nil
	}
	return true, 0, nil
}

func rateLimitKey(scope string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", scope, windowStart.Unix())
}

// retryAfter rounds up to whole seconds so the header is never zero.
func retryAfter(now, start time.Time, window time.Duration) time.Duration {
	left := start.Add(window).Sub(now)
	secs := (left + time.Second - 1) / time.Second
	if secs < 1 {
		secs = 1
	}
	return secs * time.Second
}

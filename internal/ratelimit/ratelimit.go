// internal/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter stored in Redis.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	now    func() time.Time
}

func NewRateLimiter(redisURL string) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %v", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client. Closing the limiter closes it.
func NewWithClient(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		prefix: "portal:rl:",
		now:    time.Now,
	}
}

func (rl *RateLimiter) Client() *redis.Client {
	return rl.redis
}

// Allow counts one hit for key in the current window and reports whether the
// count is still within limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	seconds := int64(window.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	windowKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, rl.now().Unix()/seconds)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	count := int(incr.Val())
	return count <= limit, count, nil
}

func (rl *RateLimiter) Close() error {
	return rl.redis.Close()
}

// Package ratelimit counts requests per key in Redis using a sliding window
// kept in a sorted set, so limits hold across server instances.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request for key fits the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RedisRateLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
}

// NewRedisRateLimiter limits each key to limit requests per window. scope
// separates counters of different endpoints sharing one Redis.
func NewRedisRateLimiter(client *redis.Client, scope string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

// Allow records the request and reports whether it is within the limit.
// A non-positive limit allows everything.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 || l.window <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.getKey(key)
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-l.window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(l.limit), nil
}

// Used returns how many requests key made inside the current window.
func (l *RedisRateLimiter) Used(ctx context.Context, key string) (int64, error) {
	redisKey := l.getKey(key)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(time.Now().Add(-l.window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}

	return zcard.Val(), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(key string) string {
	return fmt.Sprintf("helpdesk:ratelimit:%s:%s", l.scope, key)
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"zurnaWorkshop/internal/config"
)

// Limiter decides whether one more request under key fits the current window.
// When it does not, retryAfter tells how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// New returns a Redis-backed limiter, or a limiter that allows everything when
// no Redis address is configured.
func New(ctx context.Context, cfg config.Redis) (Limiter, *redis.Client, error) {
	if cfg.Addr == "" {
		return Noop{}, nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewFixedWindow(client, "ratelimit", cfg.RateLimitPerMinute, time.Minute), client, nil
}

// FixedWindow counts requests per key in windows of a fixed length.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewFixedWindow(client *redis.Client, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, prefix: prefix, limit: limit, window: window}
}

func (f *FixedWindow) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := f.prefix + ":" + key

	count, err := f.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count request: %w", err)
	}

	if count == 1 {
		if err := f.client.Expire(ctx, redisKey, f.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	if count <= int64(f.limit) {
		return true, 0, nil
	}

	ttl, err := f.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = f.window
	}

	return false, ttl, nil
}

type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// ratelimit.go provides a Valkey-backed fixed-window request counter.
// Every instance behind the load balancer shares the same counters, so the
// limit holds for the whole deployment rather than per process.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateKeyPrefix is the Valkey key prefix for rate counters.
const rateKeyPrefix = "ratelimit:"

// RateCounter counts requests per key in fixed windows.
type RateCounter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateCounter creates a counter allowing limit requests per window.
func NewRateCounter(client *redis.Client, limit int, window time.Duration) *RateCounter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateCounter{client: client, limit: int64(limit), window: window}
}

// Hit increments the counter for key and returns the count in the
// current window. The key expires when its window ends.
func (rc *RateCounter) Hit(ctx context.Context, key string) (int64, error) {
	k := rateKeyPrefix + key

	var incr *redis.IntCmd
	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, rc.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rate counter %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Allow reports whether key is still within the limit. Valkey errors fail
// open: a broken counter should not take the API down with it.
func (rc *RateCounter) Allow(ctx context.Context, key string) bool {
	n, err := rc.Hit(ctx, key)
	if err != nil {
		slog.Warn("rate counter error", "key", key, "error", err)
		return true
	}
	return n <= rc.limit
}

// Reset clears the counter for key.
func (rc *RateCounter) Reset(ctx context.Context, key string) error {
	if err := rc.client.Del(ctx, rateKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("rate counter reset %s: %w", key, err)
	}
	return nil
}

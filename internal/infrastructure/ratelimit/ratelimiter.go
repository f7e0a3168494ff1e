package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

func (c RateLimitConfig) windows() []window {
	return []window{
		{time.Minute, c.RequestsPerMinute},
		{time.Hour, c.RequestsPerHour},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

// RateLimiter counts requests per key over sliding windows. A zero limit
// disables that window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	Reset(ctx context.Context, key string) error
}

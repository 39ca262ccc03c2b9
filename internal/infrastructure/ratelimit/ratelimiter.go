// Package ratelimit throttles repeated requests per key over sliding windows.
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

type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within every configured window.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// Count returns the attempts recorded for key inside window.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

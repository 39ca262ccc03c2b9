package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter keeps attempts in process. Used when redis is not configured.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	history := l.prune(key, now)

	allowed := true
	for _, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}
		if countSince(history, now.Add(-w.duration)) >= w.limit {
			allowed = false
			break
		}
	}

	l.attempts[key] = append(history, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) Count(_ context.Context, key string, window time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	return int64(countSince(l.prune(key, now), now.Add(-window))), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
	return nil
}

// prune drops attempts older than the longest window.
func (l *MemoryRateLimiter) prune(key string, now time.Time) []time.Time {
	history := l.attempts[key]
	cutoff := now.Add(-time.Hour)
	i := 0
	for i < len(history) && !history[i].After(cutoff) {
		i++
	}
	history = history[i:]
	if len(history) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = history
	return history
}

func countSince(history []time.Time, since time.Time) int {
	n := 0
	for _, t := range history {
		if t.After(since) {
			n++
		}
	}
	return n
}

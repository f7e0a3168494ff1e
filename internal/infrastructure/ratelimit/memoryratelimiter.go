package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is the single-process fallback used without Redis.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.hits[key]

	// drop hits older than the longest window
	var longest time.Duration
	for _, w := range config.windows() {
		if w.limit > 0 && w.duration > longest {
			longest = w.duration
		}
	}
	kept := hits[:0]
	for _, h := range hits {
		if now.Sub(h) < longest {
			kept = append(kept, h)
		}
	}

	for _, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}
		count := 0
		for _, h := range kept {
			if now.Sub(h) < w.duration {
				count++
			}
		}
		if count >= w.limit {
			l.hits[key] = kept
			return false, nil
		}
	}

	l.hits[key] = append(kept, now)
	return true, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
	return nil
}

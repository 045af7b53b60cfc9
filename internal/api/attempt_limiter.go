package api

import (
	"sync"
	"time"
)

// attemptLimiter counts generation requests per client within a sliding window.
type attemptLimiter struct {
	mu        sync.Mutex
	attempts  map[string][]time.Time
	lastSweep time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

// allow records an attempt for key unless limit attempts already fall inside window.
func (limiter *attemptLimiter) allow(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.sweepLocked(now, window)
	recent := limiter.pruneLocked(key, now, window)
	if len(recent) >= limit {
		limiter.attempts[key] = recent
		return false
	}
	limiter.attempts[key] = append(recent, now)
	return true
}

// sweepLocked drops expired entries of every client at most once per window,
// so clients that never come back do not accumulate.
func (limiter *attemptLimiter) sweepLocked(now time.Time, window time.Duration) {
	if now.Sub(limiter.lastSweep) < window {
		return
	}
	limiter.lastSweep = now
	for key := range limiter.attempts {
		if kept := limiter.pruneLocked(key, now, window); len(kept) > 0 {
			limiter.attempts[key] = kept
		}
	}
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	kept := values[:0]
	for _, value := range values {
		if value.After(threshold) {
			kept = append(kept, value)
		}
	}
	if len(kept) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}
	return kept
}

// Package ratelimit provides a keyed rate limiter using token bucket algorithm.
// Keys identify callers (an authenticated user ID or a client IP), and each
// unique key gets its own independent bucket.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry wraps a limiter with last-access tracking so idle keys can be evicted.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent rate limiter.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int

	// Cleanup
	maxIdle  time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		maxIdle:  10 * time.Minute,
		done:     make(chan struct{}),
	}

	go krl.cleanup()

	return krl
}

// PerMinute creates a limiter expressed as a per-minute budget.
// The burst equals the budget, so a client can spend its whole minute
// allowance at once and then refills at budget/60 per second.
func PerMinute(budget int) *KeyedRateLimiter {
	return New(float64(budget)/60.0, budget)
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Wait blocks until a request for the given key is allowed or context is canceled.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.getLimiter(key).Wait(ctx)
}

// RetryAfter returns how long the caller should wait before the key has a
// token available again. Zero means a request would be allowed now.
func (krl *KeyedRateLimiter) RetryAfter(key string) time.Duration {
	limiter := krl.getLimiter(key)
	res := limiter.Reserve()
	delay := res.Delay()
	res.Cancel()
	return delay
}

// getLimiter returns the limiter for a key, creating one if needed.
func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()

	// Fast path: read lock
	krl.mu.RLock()
	e, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		krl.mu.Lock()
		e.lastSeen = now
		krl.mu.Unlock()
		return e.limiter
	}

	// Slow path: write lock to create
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists = krl.limiters[key]; exists {
		e.lastSeen = now
		return e.limiter
	}

	e = &entry{
		limiter:  rate.NewLimiter(krl.limit, krl.burst),
		lastSeen: now,
	}
	krl.limiters[key] = e
	return e.limiter
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.RLock()
	defer krl.mu.RUnlock()
	return len(krl.limiters)
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// cleanup periodically evicts keys that have been idle long enough for
// their bucket to be full again, bounding memory on a public API where
// every client IP is a key.
func (krl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.evictIdle(time.Now())
		}
	}
}

func (krl *KeyedRateLimiter) evictIdle(now time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, e := range krl.limiters {
		if now.Sub(e.lastSeen) > krl.maxIdle {
			delete(krl.limiters, key)
		}
	}
}

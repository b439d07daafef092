package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "user:user-1",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "user:user-1",
			calls:    5,
			wantPass: 2,
		},
		{
			name:     "different keys are independent",
			rps:      1,
			burst:    1,
			key:      "ip:10.0.0.1",
			calls:    1,
			wantPass: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestPerMinute(t *testing.T) {
	rl := PerMinute(30)
	defer rl.Stop()

	// The full minute budget is available as burst.
	passed := 0
	for i := 0; i < 35; i++ {
		if rl.Allow("user:user-1") {
			passed++
		}
	}
	if passed != 30 {
		t.Errorf("PerMinute(30) passed %d requests, want 30", passed)
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	rl := New(10, 1) // 10 rps, burst of 1
	defer rl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// First call should succeed immediately
	start := time.Now()
	err := rl.Wait(ctx, "test")
	if err != nil {
		t.Errorf("first Wait() failed: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("first Wait() should be immediate")
	}

	// Second call should wait ~100ms (1/10 rps)
	start = time.Now()
	err = rl.Wait(ctx, "test")
	if err != nil {
		t.Errorf("second Wait() failed: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 80*time.Millisecond || elapsed > 200*time.Millisecond {
		t.Errorf("second Wait() took %v, want ~100ms", elapsed)
	}
}

func TestKeyedRateLimiter_WaitContextCancelled(t *testing.T) {
	rl := New(0.1, 1) // Very slow: 1 request per 10 seconds
	defer rl.Stop()

	// Exhaust the burst
	rl.Allow("test")

	// Try to wait with short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx, "test")
	if err == nil {
		t.Error("Wait() should fail when context canceled")
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	// Exhaust key1
	rl.Allow("user:user-1")
	if rl.Allow("user:user-1") {
		t.Error("user-1 should be exhausted")
	}

	// A different caller should still work
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("ip key should be independent and allowed")
	}
}

func TestKeyedRateLimiter_RetryAfter(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	if d := rl.RetryAfter("test"); d != 0 {
		t.Errorf("fresh key RetryAfter = %v, want 0", d)
	}

	rl.Allow("test")

	if d := rl.RetryAfter("test"); d <= 0 {
		t.Errorf("exhausted key RetryAfter = %v, want > 0", d)
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	rl.Allow("ip:10.0.0.1")
	rl.Allow("ip:10.0.0.2")
	if got := rl.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	// Everything is stale relative to a far-future clock.
	rl.evictIdle(time.Now().Add(time.Hour))

	if got := rl.Len(); got != 0 {
		t.Errorf("Len() after eviction = %d, want 0", got)
	}

	// Evicted keys get a fresh bucket.
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("evicted key should be allowed again")
	}
}

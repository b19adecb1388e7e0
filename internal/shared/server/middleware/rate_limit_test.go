package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	current := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("u1", rule); !ok {
			t.Fatalf("burst request %d denied", i)
		}
	}

	ok, retryAfter := limiter.Allow("u1", rule)
	if ok {
		t.Fatalf("expected denial after burst")
	}
	if retryAfter <= 0 {
		t.Fatalf("retryAfter = %v", retryAfter)
	}

	current = current.Add(time.Second)
	if ok, _ := limiter.Allow("u1", rule); !ok {
		t.Fatalf("expected refill after one second")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	current := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("u1", rule); !ok {
		t.Fatalf("u1 first request denied")
	}
	if ok, _ := limiter.Allow("u2", rule); !ok {
		t.Fatalf("u2 must have its own bucket")
	}
	if ok, _ := limiter.Allow("u1", rule); ok {
		t.Fatalf("u1 second request must be denied")
	}
}

func TestRateLimiterDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)

	for i := 0; i < 10; i++ {
		if ok, _ := limiter.Allow("u1", RateLimitRule{}); !ok {
			t.Fatalf("zero rule must never throttle")
		}
	}
}

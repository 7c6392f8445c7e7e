package ratelimit

import (
	"testing"
	"time"
)

func TestApplicationLimiter_WindowEnforced(t *testing.T) {
	limiter := NewApplicationLimiter(3, time.Hour)

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.CheckAndRecord("user-1", "230226-0001")
		if !allowed {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
		now = now.Add(time.Minute)
	}

	allowed, retryAfter := limiter.CheckAndRecord("user-1", "230226-0001")
	if allowed {
		t.Fatal("4th attempt inside the window: expected rejection")
	}
	// Oldest attempt was 3 minutes ago, so the window clears in 57 minutes.
	if want := 57 * time.Minute; retryAfter != want {
		t.Errorf("retryAfter = %v, want %v", retryAfter, want)
	}

	// A rejected attempt must not consume a slot: the retry-after must not
	// have moved.
	_, retryAgain := limiter.CheckAndRecord("user-1", "230226-0001")
	if retryAgain != retryAfter {
		t.Errorf("rejected attempt consumed a slot: retryAfter moved from %v to %v", retryAfter, retryAgain)
	}

	// Advance past the window; the oldest timestamps are pruned and the
	// attempt succeeds.
	now = now.Add(time.Hour)
	allowed, _ = limiter.CheckAndRecord("user-1", "230226-0001")
	if !allowed {
		t.Fatal("attempt after window elapsed: expected allowed")
	}
}

func TestApplicationLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewApplicationLimiter(1, time.Hour)

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })

	if allowed, _ := limiter.CheckAndRecord("user-1", "quest-a"); !allowed {
		t.Fatal("first attempt on quest-a should be allowed")
	}
	if allowed, _ := limiter.CheckAndRecord("user-1", "quest-a"); allowed {
		t.Fatal("second attempt on quest-a should be rejected")
	}

	// Same user, different quest: independent budget.
	if allowed, _ := limiter.CheckAndRecord("user-1", "quest-b"); !allowed {
		t.Error("attempt on quest-b should be allowed")
	}
	// Different user, same quest: independent budget.
	if allowed, _ := limiter.CheckAndRecord("user-2", "quest-a"); !allowed {
		t.Error("user-2 attempt on quest-a should be allowed")
	}
}

func TestGuildThrottle_Allow(t *testing.T) {
	throttle := NewGuildThrottle(1, 2)

	if !throttle.Allow("guild-1") || !throttle.Allow("guild-1") {
		t.Fatal("burst of 2 should be allowed")
	}
	if throttle.Allow("guild-1") {
		t.Error("third immediate event should be throttled")
	}
	if !throttle.Allow("guild-2") {
		t.Error("another guild has its own budget")
	}
	if !throttle.Allow("") {
		t.Error("events without a guild ID are never throttled")
	}
}

// Package ratelimit provides the two rate limiters used by the quest board:
// a sliding-window limiter for quest applications and a token-bucket throttle
// for per-guild interaction bursts.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultApplicationLimit is the number of applications a user may send
	// to one quest within the window.
	DefaultApplicationLimit = 3
	// DefaultApplicationWindow is the rolling window for application attempts.
	DefaultApplicationWindow = time.Hour
)

type applicationKey struct {
	userID  string
	questID string
}

// ApplicationLimiter enforces a per-(user, quest) sliding window on
// application attempts. State lives in process memory only and is lost on
// restart; a rejected attempt does not consume a slot.
type ApplicationLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	attempts map[applicationKey][]time.Time
}

// NewApplicationLimiter creates a limiter allowing limit attempts per window.
func NewApplicationLimiter(limit int, window time.Duration) *ApplicationLimiter {
	return &ApplicationLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		attempts: make(map[applicationKey][]time.Time),
	}
}

// SetClock overrides the limiter's clock. Tests only.
func (l *ApplicationLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// CheckAndRecord reports whether userID may apply to questID right now.
// Timestamps older than the window are pruned before counting. When the
// attempt is allowed it is recorded; when rejected, retryAfter is the time
// until the oldest recorded attempt leaves the window.
func (l *ApplicationLimiter) CheckAndRecord(userID, questID string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := applicationKey{userID: userID, questID: questID}

	kept := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.attempts[key] = kept
		return false, l.window - now.Sub(kept[0])
	}

	l.attempts[key] = append(kept, now)
	return true, 0
}

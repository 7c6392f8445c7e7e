package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle guild entry is eligible
	// for cleanup.
	maxIdleAge = 10 * time.Minute
)

type guildEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GuildThrottle is a per-guild token-bucket limiter that prunes stale entries
// inline. It caps how many interactions a single guild can push through the
// routers per unit time.
type GuildThrottle struct {
	mu     sync.Mutex
	guilds map[string]*guildEntry
	r      rate.Limit
	b      int
}

// NewGuildThrottle creates a throttle allowing r events/sec with burst b per
// guild.
func NewGuildThrottle(r rate.Limit, b int) *GuildThrottle {
	return &GuildThrottle{
		guilds: make(map[string]*guildEntry),
		r:      r,
		b:      b,
	}
}

// Allow reports whether an event for guildID may proceed. Events without a
// guild ID are always allowed.
func (t *GuildThrottle) Allow(guildID string) bool {
	if guildID == "" {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.guilds) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range t.guilds {
			if e.lastSeen.Before(cutoff) {
				delete(t.guilds, k)
			}
		}
	}

	e, ok := t.guilds[guildID]
	if !ok {
		e = &guildEntry{limiter: rate.NewLimiter(t.r, t.b)}
		t.guilds[guildID] = e
	}
	e.lastSeen = time.Now()

	return e.limiter.Allow()
}

// Middleware returns a watermill middleware that drops messages from guilds
// exceeding their budget. Dropping (rather than erroring) keeps the broker
// from redelivering throttled interactions.
func (t *GuildThrottle) Middleware(logger *slog.Logger) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			guildID := msg.Metadata.Get("guild_id")
			if !t.Allow(guildID) {
				logger.Warn("Dropping throttled interaction",
					slog.String("guild_id", guildID),
					slog.String("message_id", msg.UUID),
				)
				return nil, nil
			}
			return h(msg)
		}
	}
}

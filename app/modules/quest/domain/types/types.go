// Package questtypes holds the quest domain value types shared across the
// application, repository and handler layers.
package questtypes

import (
	"fmt"
	"time"
)

// QuestID is the DDMMYY-NNNN identifier assigned at creation. Immutable.
type QuestID string

// Discord snowflake identifiers, kept as distinct types so they cannot be
// swapped at call sites.
type (
	GuildID   string
	UserID    string
	ThreadID  string
	ChannelID string
	MessageID string
)

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	StatusRecruiting QuestStatus = "RECRUITING"
	StatusFull       QuestStatus = "FULL"
	StatusCompleted  QuestStatus = "COMPLETED"
	StatusCancelled  QuestStatus = "CANCELLED"
	// StatusDeleted is render-only: pushed to external surfaces just before
	// the record is purged, never stored.
	StatusDeleted QuestStatus = "DELETED"
)

// QuestMode says whether the session runs online or at a table.
type QuestMode string

const (
	ModeOnline  QuestMode = "ONLINE"
	ModeOffline QuestMode = "OFFLINE"
)

// QuestType distinguishes a single session from an ongoing campaign.
type QuestType string

const (
	TypeOneshot  QuestType = "ONESHOT"
	TypeCampaign QuestType = "CAMPAIGN"
)

// SystemUnknown is the sentinel used when neither the title tags nor the
// body text identified a game system.
const SystemUnknown = "UNKNOWN"

// Quest is the central record. Roster order is join order; the waitlist is a
// FIFO queue disjoint from the roster. Version backs the optimistic
// compare-and-swap in the store.
type Quest struct {
	ID        QuestID     `json:"quest_id"`
	GuildID   GuildID     `json:"guild_id"`
	ThreadID  ThreadID    `json:"thread_id"`
	DMID      UserID      `json:"dm_id"`
	Title     string      `json:"title"`
	Status    QuestStatus `json:"status"`
	Mode      QuestMode   `json:"mode,omitempty"`
	QuestType QuestType   `json:"quest_type,omitempty"`
	System    string      `json:"system"`
	MaxPlayers int        `json:"max_players"`
	Roster    []UserID    `json:"roster"`
	Waitlist  []UserID    `json:"waitlist"`

	EmbedChannelID ChannelID `json:"embed_channel_id,omitempty"`
	EmbedMessageID MessageID `json:"embed_message_id,omitempty"`

	// LastPushedTitle is the canonical title last handed to the gateway,
	// used for the "already equal" rename skip.
	LastPushedTitle string `json:"last_pushed_title,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether joins are closed for good.
func (q *Quest) IsTerminal() bool {
	return q.Status == StatusCompleted || q.Status == StatusCancelled
}

// HasCapacity reports whether the roster can take another member.
// MaxPlayers of zero means unlimited.
func (q *Quest) HasCapacity() bool {
	return q.MaxPlayers == 0 || len(q.Roster) < q.MaxPlayers
}

// OnRoster reports whether user holds a roster slot.
func (q *Quest) OnRoster(user UserID) bool {
	for _, u := range q.Roster {
		if u == user {
			return true
		}
	}
	return false
}

// OnWaitlist reports whether user is queued.
func (q *Quest) OnWaitlist(user UserID) bool {
	for _, u := range q.Waitlist {
		if u == user {
			return true
		}
	}
	return false
}

// WaitlistPosition returns the 1-based queue position, or 0 when absent.
func (q *Quest) WaitlistPosition(user UserID) int {
	for i, u := range q.Waitlist {
		if u == user {
			return i + 1
		}
	}
	return 0
}

// ThreadURL builds the permalink to the recruitment thread.
func (q *Quest) ThreadURL() string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s", q.GuildID, q.ThreadID)
}

// DeriveStatus re-establishes the FULL/RECRUITING invariant after a roster
// mutation. COMPLETED and CANCELLED are sticky and never overridden here.
func (q *Quest) DeriveStatus() {
	if q.IsTerminal() {
		return
	}
	if q.MaxPlayers > 0 && len(q.Roster) >= q.MaxPlayers {
		q.Status = StatusFull
	} else {
		q.Status = StatusRecruiting
	}
}

// Clone returns a deep copy so service mutations never alias repository or
// caller slices.
func (q *Quest) Clone() *Quest {
	out := *q
	out.Roster = append([]UserID(nil), q.Roster...)
	out.Waitlist = append([]UserID(nil), q.Waitlist...)
	return &out
}

// ApplicationStatus is the lifecycle of a moderated application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationDeclined ApplicationStatus = "DECLINED"
)

// Application is one moderated join request awaiting an organizer decision.
// A resolved application is terminal.
type Application struct {
	ID          string            `json:"application_id"`
	QuestID     QuestID           `json:"quest_id"`
	GuildID     GuildID           `json:"guild_id"`
	ApplicantID UserID            `json:"applicant_id"`
	Status      ApplicationStatus `json:"status"`
	Message     string            `json:"message,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
	ResolvedBy  UserID            `json:"resolved_by,omitempty"`
}

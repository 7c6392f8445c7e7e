package questdb

import (
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/uptrace/bun"
)

// Quest is the persisted quest record. Roster and waitlist are jsonb arrays
// ordered by join time; version backs the optimistic compare-and-swap.
type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID         questtypes.QuestID     `bun:"quest_id,pk,notnull,type:varchar(16)"`
	GuildID    questtypes.GuildID     `bun:"guild_id,notnull,type:varchar(20)"`
	ThreadID   questtypes.ThreadID    `bun:"thread_id,notnull,type:varchar(20)"`
	DMID       questtypes.UserID      `bun:"dm_id,notnull,type:varchar(20)"`
	Title      string                 `bun:"title,notnull"`
	Status     questtypes.QuestStatus `bun:"status,notnull,type:varchar(12)"`
	Mode       questtypes.QuestMode   `bun:"mode,nullzero,type:varchar(8)"`
	QuestType  questtypes.QuestType   `bun:"quest_type,nullzero,type:varchar(10)"`
	System     string                 `bun:"system,notnull,default:'UNKNOWN'"`
	MaxPlayers int                    `bun:"max_players,notnull,default:0"`
	Roster     []questtypes.UserID    `bun:"roster,type:jsonb,notnull,default:'[]'"`
	Waitlist   []questtypes.UserID    `bun:"waitlist,type:jsonb,notnull,default:'[]'"`

	EmbedChannelID  questtypes.ChannelID `bun:"embed_channel_id,nullzero,type:varchar(20)"`
	EmbedMessageID  questtypes.MessageID `bun:"embed_message_id,nullzero,type:varchar(20)"`
	LastPushedTitle string               `bun:"last_pushed_title,nullzero"`

	Version   int       `bun:"version,notnull,default:1"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// QuestCounter is the per-UTC-day id counter. No table alias: the upsert's
// conflict clause references the table by its full name.
type QuestCounter struct {
	bun.BaseModel `bun:"table:quest_counters"`

	DateKey string `bun:"date_key,pk,notnull,type:varchar(6)"`
	Counter int    `bun:"counter,notnull,default:0"`
}

// QuestApplication is one moderated join request. Resolved rows are kept for
// the terminal-decision guard and for stats.
type QuestApplication struct {
	bun.BaseModel `bun:"table:quest_applications,alias:qa"`

	ID          string                       `bun:"application_id,pk,notnull,type:varchar(36)"`
	QuestID     questtypes.QuestID           `bun:"quest_id,notnull,type:varchar(16)"`
	GuildID     questtypes.GuildID           `bun:"guild_id,notnull,type:varchar(20)"`
	ApplicantID questtypes.UserID            `bun:"applicant_id,notnull,type:varchar(20)"`
	Status      questtypes.ApplicationStatus `bun:"status,notnull,type:varchar(10)"`
	Message     string                       `bun:"message,nullzero"`
	CreatedAt   time.Time                    `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	ResolvedAt  *time.Time                   `bun:"resolved_at,nullzero"`
	ResolvedBy  questtypes.UserID            `bun:"resolved_by,nullzero,type:varchar(20)"`
}

func toDomainQuest(m *Quest) *questtypes.Quest {
	if m == nil {
		return nil
	}
	return &questtypes.Quest{
		ID:              m.ID,
		GuildID:         m.GuildID,
		ThreadID:        m.ThreadID,
		DMID:            m.DMID,
		Title:           m.Title,
		Status:          m.Status,
		Mode:            m.Mode,
		QuestType:       m.QuestType,
		System:          m.System,
		MaxPlayers:      m.MaxPlayers,
		Roster:          append([]questtypes.UserID(nil), m.Roster...),
		Waitlist:        append([]questtypes.UserID(nil), m.Waitlist...),
		EmbedChannelID:  m.EmbedChannelID,
		EmbedMessageID:  m.EmbedMessageID,
		LastPushedTitle: m.LastPushedTitle,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toDBQuest(q *questtypes.Quest) *Quest {
	if q == nil {
		return nil
	}
	roster := q.Roster
	if roster == nil {
		roster = []questtypes.UserID{}
	}
	waitlist := q.Waitlist
	if waitlist == nil {
		waitlist = []questtypes.UserID{}
	}
	return &Quest{
		ID:              q.ID,
		GuildID:         q.GuildID,
		ThreadID:        q.ThreadID,
		DMID:            q.DMID,
		Title:           q.Title,
		Status:          q.Status,
		Mode:            q.Mode,
		QuestType:       q.QuestType,
		System:          q.System,
		MaxPlayers:      q.MaxPlayers,
		Roster:          roster,
		Waitlist:        waitlist,
		EmbedChannelID:  q.EmbedChannelID,
		EmbedMessageID:  q.EmbedMessageID,
		LastPushedTitle: q.LastPushedTitle,
		Version:         q.Version,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toDomainApplication(m *QuestApplication) *questtypes.Application {
	if m == nil {
		return nil
	}
	return &questtypes.Application{
		ID:          m.ID,
		QuestID:     m.QuestID,
		GuildID:     m.GuildID,
		ApplicantID: m.ApplicantID,
		Status:      m.Status,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		ResolvedAt:  m.ResolvedAt,
		ResolvedBy:  m.ResolvedBy,
	}
}

func toDBApplication(a *questtypes.Application) *QuestApplication {
	if a == nil {
		return nil
	}
	return &QuestApplication{
		ID:          a.ID,
		QuestID:     a.QuestID,
		GuildID:     a.GuildID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		Message:     a.Message,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
		ResolvedBy:  a.ResolvedBy,
	}
}

package questdb

import (
	"context"
	"errors"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

var (
	// ErrNotFound means no record matched the lookup.
	ErrNotFound = errors.New("quest record not found")
	// ErrVersionConflict means a compare-and-swap update lost the race;
	// callers reload and retry.
	ErrVersionConflict = errors.New("quest version conflict")
	// ErrApplicationResolved means a decision targeted an application that
	// is no longer pending.
	ErrApplicationResolved = errors.New("application already resolved")
)

// Repository is the quest persistence contract.
//
// UpdateCAS compares the stored version against quest.Version, writes with
// version+1 on match, and returns ErrVersionConflict otherwise. Every
// read-decide-write cycle in the application layer goes through it.
type Repository interface {
	// GenerateQuestID allocates the next DDMMYY-NNNN id for now's UTC day.
	// Atomic across concurrent callers; the counter never resets within a
	// day and survives restarts.
	GenerateQuestID(ctx context.Context) (questtypes.QuestID, error)

	Create(ctx context.Context, quest *questtypes.Quest) error
	Get(ctx context.Context, id questtypes.QuestID) (*questtypes.Quest, error)
	GetByThread(ctx context.Context, threadID questtypes.ThreadID) (*questtypes.Quest, error)
	GetByEmbedMessage(ctx context.Context, messageID questtypes.MessageID) (*questtypes.Quest, error)
	UpdateCAS(ctx context.Context, quest *questtypes.Quest) error
	Delete(ctx context.Context, id questtypes.QuestID) error
	ListByGuild(ctx context.Context, guildID questtypes.GuildID) ([]questtypes.Quest, error)
	ListAll(ctx context.Context) ([]questtypes.Quest, error)
	// ClearGuildQuests removes every quest of a guild and returns the count.
	ClearGuildQuests(ctx context.Context, guildID questtypes.GuildID) (int, error)

	CreateApplication(ctx context.Context, app *questtypes.Application) error
	GetApplication(ctx context.Context, id string) (*questtypes.Application, error)
	// ResolveApplication flips a PENDING application to status; returns
	// ErrApplicationResolved when it is no longer pending.
	ResolveApplication(ctx context.Context, id string, status questtypes.ApplicationStatus, resolvedBy questtypes.UserID) (*questtypes.Application, error)
	// PendingApplication returns the open application for (quest, applicant),
	// or ErrNotFound.
	PendingApplication(ctx context.Context, questID questtypes.QuestID, applicantID questtypes.UserID) (*questtypes.Application, error)
}

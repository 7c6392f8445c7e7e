package questservice

import (
	"context"
	"time"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/pkg/jwt"
)

// GuildConfigReader is the slice of the guild repository this service needs.
type GuildConfigReader interface {
	GetConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error)
}

// SyncEnqueuer schedules a best-effort push of quest state to the external
// surfaces. Enqueue failures are the caller's to log; the push itself is
// fire-and-forget and never reported back.
type SyncEnqueuer interface {
	EnqueueSync(ctx context.Context, quest questtypes.Quest) error
	// EnqueueDeleteSync renders the DELETED view from the snapshot; the
	// record may already be purged when the job runs.
	EnqueueDeleteSync(ctx context.Context, quest questtypes.Quest) error
}

// ApplicationLimiter bounds moderated application attempts per
// (applicant, quest) pair.
type ApplicationLimiter interface {
	CheckAndRecord(userID, questID string) (allowed bool, retryAfter time.Duration)
}

// DecisionTokens signs and validates the accept/decline tokens handed to
// organizers. Satisfied by pkg/jwt.Service.
type DecisionTokens interface {
	GenerateDecisionToken(applicationID, questID, applicantID string) (string, error)
	ValidateDecisionToken(tokenString string) (*jwt.DecisionClaims, error)
}

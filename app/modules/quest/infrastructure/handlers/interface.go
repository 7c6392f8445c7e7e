package questhandlers

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// Handlers defines the contract for quest event handlers.
type Handlers interface {
	HandleThreadCreated(ctx context.Context, payload *questevents.ThreadCreatedPayload) ([]handlerwrapper.Result, error)
	HandleRecruitRequested(ctx context.Context, payload *questevents.RecruitRequestedPayload) ([]handlerwrapper.Result, error)
	HandleRegisterRequested(ctx context.Context, payload *questevents.RegisterRequestedPayload) ([]handlerwrapper.Result, error)
	HandleJoinRequested(ctx context.Context, payload *questevents.JoinRequestedPayload) ([]handlerwrapper.Result, error)
	HandleDecisionRequested(ctx context.Context, payload *questevents.DecisionRequestedPayload) ([]handlerwrapper.Result, error)
	HandleLeaveRequested(ctx context.Context, payload *questevents.LeaveRequestedPayload) ([]handlerwrapper.Result, error)
	HandleKickRequested(ctx context.Context, payload *questevents.KickRequestedPayload) ([]handlerwrapper.Result, error)
	HandleStatusSetRequested(ctx context.Context, payload *questevents.StatusSetRequestedPayload) ([]handlerwrapper.Result, error)
	HandleUpdateRequested(ctx context.Context, payload *questevents.UpdateRequestedPayload) ([]handlerwrapper.Result, error)
	HandleDeleteRequested(ctx context.Context, payload *questevents.DeleteRequestedPayload) ([]handlerwrapper.Result, error)
	HandleInfoRequested(ctx context.Context, payload *questevents.InfoRequestedPayload) ([]handlerwrapper.Result, error)
	HandleListRequested(ctx context.Context, payload *questevents.ListRequestedPayload) ([]handlerwrapper.Result, error)
	HandleEmbedPosted(ctx context.Context, payload *questevents.EmbedPostedPayload) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*QuestHandlers)(nil)

package questservice

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Service is the quest state machine. Every method is one atomic
// read-decide-write against the store; business rejections come back as
// Failure payloads, infrastructure problems as errors.
type Service interface {
	HandleThreadCreated(ctx context.Context, payload questevents.ThreadCreatedPayload) (results.OperationResult, error)
	CreateQuest(ctx context.Context, payload questevents.RecruitRequestedPayload) (results.OperationResult, error)
	RegisterThread(ctx context.Context, payload questevents.RegisterRequestedPayload) (results.OperationResult, error)
	Join(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error)
	ResolveApplication(ctx context.Context, payload questevents.DecisionRequestedPayload) (results.OperationResult, error)
	Leave(ctx context.Context, payload questevents.LeaveRequestedPayload) (results.OperationResult, error)
	Kick(ctx context.Context, payload questevents.KickRequestedPayload) (results.OperationResult, error)
	SetStatus(ctx context.Context, payload questevents.StatusSetRequestedPayload) (results.OperationResult, error)
	Update(ctx context.Context, payload questevents.UpdateRequestedPayload) (results.OperationResult, error)
	Delete(ctx context.Context, payload questevents.DeleteRequestedPayload) (results.OperationResult, error)
	Info(ctx context.Context, payload questevents.InfoRequestedPayload) (results.OperationResult, error)
	List(ctx context.Context, payload questevents.ListRequestedPayload) (results.OperationResult, error)
	AttachEmbedMessage(ctx context.Context, payload questevents.EmbedPostedPayload) (results.OperationResult, error)
}

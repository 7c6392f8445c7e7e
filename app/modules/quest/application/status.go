package questservice

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// SetStatus sets the lifecycle status directly. DELETED is not settable; it
// exists only as the render pushed right before a purge.
func (s *QuestService) SetStatus(ctx context.Context, payload questevents.StatusSetRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SetStatus", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if !settableStatus(payload.Status) {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrInvalidStatus), nil
		}

		res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
			if !canManage(quest, payload.ActorID, payload.IsAdmin) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotAuthorized), nil
			}

			previous := quest.Status
			quest.Status = payload.Status

			return results.OperationResult{Success: &questevents.QuestStatusSetPayload{
				Quest:    *quest,
				Previous: previous,
			}}, nil
		})
		if err != nil || res.Failure != nil {
			return res, err
		}

		s.syncFromResult(ctx, res)
		return res, nil
	})
}

func settableStatus(status questtypes.QuestStatus) bool {
	switch status {
	case questtypes.StatusRecruiting, questtypes.StatusFull, questtypes.StatusCompleted, questtypes.StatusCancelled:
		return true
	}
	return false
}

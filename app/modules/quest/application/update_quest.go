package questservice

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Update overwrites the provided subset of quest parameters. Shrinking
// max_players below the roster size is allowed; the roster stays over
// capacity and drains through Leave/Kick, and status is only re-derived on
// roster mutations.
func (s *QuestService) Update(ctx context.Context, payload questevents.UpdateRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Update", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if payload.Status != nil && !settableStatus(*payload.Status) {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrInvalidStatus), nil
		}
		if payload.MaxPlayers != nil && *payload.MaxPlayers < 0 {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrInvalidMaxPlayers), nil
		}

		res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
			if !canManage(quest, payload.ActorID, payload.IsAdmin) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotAuthorized), nil
			}

			if payload.Status != nil {
				quest.Status = *payload.Status
			}
			if payload.Mode != nil {
				quest.Mode = *payload.Mode
			}
			if payload.QuestType != nil {
				quest.QuestType = *payload.QuestType
			}
			if payload.System != nil {
				quest.System = *payload.System
				if quest.System == "" {
					quest.System = questtypes.SystemUnknown
				}
			}
			if payload.MaxPlayers != nil {
				quest.MaxPlayers = *payload.MaxPlayers
			}
			if payload.Title != nil && *payload.Title != "" {
				quest.Title = *payload.Title
			}

			return results.OperationResult{Success: &questevents.QuestUpdatedPayload{
				Quest: *quest,
			}}, nil
		})
		if err != nil || res.Failure != nil {
			return res, err
		}

		s.syncFromResult(ctx, res)
		return res, nil
	})
}

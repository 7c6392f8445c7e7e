package questservice

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Kick removes a user from the roster only; waitlisted users just leave on
// their own. Organizer or admin only.
func (s *QuestService) Kick(ctx context.Context, payload questevents.KickRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Kick", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
			if !canManage(quest, payload.ActorID, payload.IsAdmin) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotAuthorized), nil
			}
			if !quest.OnRoster(payload.TargetID) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotOnRoster), nil
			}

			quest.Roster = removeUser(quest.Roster, payload.TargetID)
			promoted := promoteWaitlistHead(quest)
			quest.DeriveStatus()

			return results.OperationResult{Success: &questevents.QuestKickedPayload{
				Quest:      *quest,
				TargetID:   payload.TargetID,
				PromotedID: promoted,
			}}, nil
		})
		if err != nil || res.Failure != nil {
			return res, err
		}

		s.syncFromResult(ctx, res)
		return res, nil
	})
}

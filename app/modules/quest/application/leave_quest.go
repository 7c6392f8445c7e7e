package questservice

import (
	"context"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Leave removes the actor from the roster or the waitlist. Freeing a roster
// slot promotes the waitlist head, preserving FIFO order of the remainder.
func (s *QuestService) Leave(ctx context.Context, payload questevents.LeaveRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Leave", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
			if quest.OnRoster(payload.ActorID) {
				quest.Roster = removeUser(quest.Roster, payload.ActorID)
				promoted := promoteWaitlistHead(quest)
				quest.DeriveStatus()
				return results.OperationResult{Success: &questevents.QuestLeftPayload{
					Quest:      *quest,
					UserID:     payload.ActorID,
					FromRoster: true,
					PromotedID: promoted,
				}}, nil
			}

			if quest.OnWaitlist(payload.ActorID) {
				quest.Waitlist = removeUser(quest.Waitlist, payload.ActorID)
				return results.OperationResult{Success: &questevents.QuestLeftPayload{
					Quest:  *quest,
					UserID: payload.ActorID,
				}}, nil
			}

			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotMember), nil
		})
		if err != nil || res.Failure != nil {
			return res, err
		}

		s.syncFromResult(ctx, res)
		return res, nil
	})
}

func removeUser(users []questtypes.UserID, target questtypes.UserID) []questtypes.UserID {
	out := users[:0]
	for _, u := range users {
		if u != target {
			out = append(out, u)
		}
	}
	return out
}

// promoteWaitlistHead moves the first queued user into the roster when a
// slot is actually free; an over-capacity roster keeps draining first.
func promoteWaitlistHead(quest *questtypes.Quest) questtypes.UserID {
	if len(quest.Waitlist) == 0 || !quest.HasCapacity() {
		return ""
	}
	promoted := quest.Waitlist[0]
	quest.Waitlist = append([]questtypes.UserID(nil), quest.Waitlist[1:]...)
	quest.Roster = append(quest.Roster, promoted)
	return promoted
}

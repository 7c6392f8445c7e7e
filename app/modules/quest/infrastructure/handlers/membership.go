package questhandlers

import (
	"context"
	"errors"
	"fmt"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleLeaveRequested handles a leave click; a promoted waitlister gets a
// DM about their new roster spot.
func (h *QuestHandlers) HandleLeaveRequested(ctx context.Context, payload *questevents.LeaveRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Leave(ctx, *payload)
	if err != nil {
		return nil, err
	}

	left, ok := result.Success.(*questevents.QuestLeftPayload)
	if !ok {
		return mapOperationResult(result, questevents.QuestLeft, questevents.QuestLeaveFailed), nil
	}

	out := []handlerwrapper.Result{{Topic: questevents.QuestLeft, Payload: left}}
	if left.PromotedID != "" {
		out = append(out, promotionDM(left.PromotedID, left.Quest.Title))
	}
	return out, nil
}

// HandleKickRequested handles an organizer removal. The kicked member is
// told; a promoted waitlister gets the same DM as on a leave.
func (h *QuestHandlers) HandleKickRequested(ctx context.Context, payload *questevents.KickRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Kick(ctx, *payload)
	if err != nil {
		return nil, err
	}

	kicked, ok := result.Success.(*questevents.QuestKickedPayload)
	if !ok {
		return mapOperationResult(result, questevents.QuestKicked, questevents.QuestKickFailed), nil
	}

	out := []handlerwrapper.Result{
		{Topic: questevents.QuestKicked, Payload: kicked},
		{Topic: questevents.DMSend, Payload: questevents.DMSendPayload{
			UserID:  kicked.TargetID,
			Content: fmt.Sprintf("You were removed from %q by the organizer.", kicked.Quest.Title),
		}},
	}
	if kicked.PromotedID != "" {
		out = append(out, promotionDM(kicked.PromotedID, kicked.Quest.Title))
	}
	return out, nil
}

func promotionDM(userID questtypes.UserID, title string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: questevents.DMSend,
		Payload: questevents.DMSendPayload{
			UserID:  userID,
			Content: fmt.Sprintf("A spot opened up in %q and you've been moved from the waitlist onto the roster.", title),
		},
	}
}

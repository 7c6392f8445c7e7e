package questhandlers

import (
	"context"
	"errors"
	"fmt"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleDecisionRequested handles an organizer's accept/decline click and
// tells the applicant how it went.
func (h *QuestHandlers) HandleDecisionRequested(ctx context.Context, payload *questevents.DecisionRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResolveApplication(ctx, *payload)
	if err != nil {
		return nil, err
	}

	resolved, ok := result.Success.(*questevents.DecisionResolvedPayload)
	if !ok {
		return mapOperationResult(result, questevents.DecisionResolved, questevents.DecisionFailed), nil
	}

	var content string
	switch {
	case resolved.Accepted && resolved.Waitlisted:
		content = fmt.Sprintf("You were accepted to %q, but the roster filled up first. You're on the waitlist.", resolved.Quest.Title)
	case resolved.Accepted:
		content = fmt.Sprintf("You were accepted to %q. See you at the table!", resolved.Quest.Title)
	default:
		content = fmt.Sprintf("Your application to %q was declined.", resolved.Quest.Title)
	}

	return []handlerwrapper.Result{
		{Topic: questevents.DecisionResolved, Payload: resolved},
		{Topic: questevents.DMSend, Payload: questevents.DMSendPayload{
			UserID:  resolved.Application.ApplicantID,
			Content: content,
		}},
	}, nil
}

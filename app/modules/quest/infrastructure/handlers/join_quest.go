package questhandlers

import (
	"context"
	"errors"
	"fmt"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questsync "github.com/aetherius-rpg/questboard/app/modules/quest/sync"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleJoinRequested handles a join/apply click. The outcome shape depends
// on the guild's join mode: a direct join lands on the roster or waitlist,
// a moderated one opens an application and DMs the organizer the decision
// buttons.
func (h *QuestHandlers) HandleJoinRequested(ctx context.Context, payload *questevents.JoinRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Join(ctx, *payload)
	if err != nil {
		return nil, err
	}

	switch success := result.Success.(type) {
	case *questevents.QuestJoinedPayload:
		return []handlerwrapper.Result{{Topic: questevents.QuestJoined, Payload: success}}, nil

	case *questevents.QuestWaitlistedPayload:
		return []handlerwrapper.Result{{Topic: questevents.QuestWaitlisted, Payload: success}}, nil

	case *questevents.ApplicationOpenedPayload:
		content := fmt.Sprintf("%s applied to join %q.", mention(success.Application.ApplicantID), success.Quest.Title)
		if success.Application.Message != "" {
			content += fmt.Sprintf("\n> %s", success.Application.Message)
		}
		return []handlerwrapper.Result{
			{Topic: questevents.ApplicationOpened, Payload: success},
			{Topic: questevents.DMSend, Payload: questevents.DMSendPayload{
				UserID:     success.Quest.DMID,
				Content:    content,
				Components: questsync.DecisionComponents(success.DecisionToken),
			}},
		}, nil
	}

	return mapOperationResult(result, "", questevents.QuestJoinFailed), nil
}

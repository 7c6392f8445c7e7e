package questhandlers

import (
	"context"
	"errors"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleInfoRequested answers /quest info lookups.
func (h *QuestHandlers) HandleInfoRequested(ctx context.Context, payload *questevents.InfoRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Info(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, questevents.QuestInfoResult, questevents.QuestInfoFailed), nil
}

// HandleListRequested answers /quest list lookups.
func (h *QuestHandlers) HandleListRequested(ctx context.Context, payload *questevents.ListRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.List(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, questevents.QuestListResult, questevents.QuestListFailed), nil
}

// HandleEmbedPosted records the gateway's embed message ids. The service
// schedules a first sync push itself, so nothing is published here.
func (h *QuestHandlers) HandleEmbedPosted(ctx context.Context, payload *questevents.EmbedPostedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if _, err := h.service.AttachEmbedMessage(ctx, *payload); err != nil {
		return nil, err
	}
	return nil, nil
}

package questhandlers

import (
	"context"
	"errors"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleStatusSetRequested handles explicit status changes.
func (h *QuestHandlers) HandleStatusSetRequested(ctx context.Context, payload *questevents.StatusSetRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SetStatus(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, questevents.QuestStatusSet, questevents.QuestStatusFailed), nil
}

// HandleUpdateRequested handles parameter updates.
func (h *QuestHandlers) HandleUpdateRequested(ctx context.Context, payload *questevents.UpdateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Update(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, questevents.QuestUpdated, questevents.QuestUpdateFailed), nil
}

// HandleDeleteRequested handles quest purges.
func (h *QuestHandlers) HandleDeleteRequested(ctx context.Context, payload *questevents.DeleteRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Delete(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, questevents.QuestDeleted, questevents.QuestDeleteFailed), nil
}

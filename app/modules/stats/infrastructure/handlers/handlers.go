// Package statshandlers maps statistics events onto the service.
package statshandlers

import (
	"context"
	"errors"

	statsservice "github.com/aetherius-rpg/questboard/app/modules/stats/application"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Handlers defines the contract for stats event handlers.
type Handlers interface {
	HandleOverviewRequested(ctx context.Context, payload *statsevents.OverviewRequestedPayload) ([]handlerwrapper.Result, error)
	HandleExportRequested(ctx context.Context, payload *statsevents.ExportRequestedPayload) ([]handlerwrapper.Result, error)
	HandleClearRequested(ctx context.Context, payload *statsevents.ClearRequestedPayload) ([]handlerwrapper.Result, error)
}

// StatsHandlers implements the Handlers interface for stats events.
type StatsHandlers struct {
	service statsservice.Service
}

var _ Handlers = (*StatsHandlers)(nil)

// NewStatsHandlers creates a new StatsHandlers instance.
func NewStatsHandlers(service statsservice.Service) *StatsHandlers {
	return &StatsHandlers{service: service}
}

// HandleOverviewRequested answers /stats overview lookups.
func (h *StatsHandlers) HandleOverviewRequested(ctx context.Context, payload *statsevents.OverviewRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Overview(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, statsevents.OverviewResult, statsevents.OverviewFailed), nil
}

// HandleExportRequested renders the workbook and chart export.
func (h *StatsHandlers) HandleExportRequested(ctx context.Context, payload *statsevents.ExportRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Export(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, statsevents.ExportResult, statsevents.ExportFailed), nil
}

// HandleClearRequested wipes the guild's board.
func (h *StatsHandlers) HandleClearRequested(ctx context.Context, payload *statsevents.ClearRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.Clear(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, statsevents.Cleared, statsevents.ClearFailed), nil
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(
	result results.OperationResult,
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	handlerResults := result.MapToHandlerResults(successTopic, failureTopic)

	wrapperResults := make([]handlerwrapper.Result, len(handlerResults))
	for i, hr := range handlerResults {
		wrapperResults[i] = handlerwrapper.Result{
			Topic:    hr.Topic,
			Payload:  hr.Payload,
			Metadata: hr.Metadata,
		}
	}

	return wrapperResults
}

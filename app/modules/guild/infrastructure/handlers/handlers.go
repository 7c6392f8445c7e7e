// Package guildhandlers maps guild configuration events onto the service.
package guildhandlers

import (
	"context"
	"errors"

	guildservice "github.com/aetherius-rpg/questboard/app/modules/guild/application"
	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Handlers defines the contract for guild event handlers.
type Handlers interface {
	HandleSetupRequested(ctx context.Context, payload *guildevents.SetupRequestedPayload) ([]handlerwrapper.Result, error)
	HandleConfigRequested(ctx context.Context, payload *guildevents.ConfigRequestedPayload) ([]handlerwrapper.Result, error)
	HandleResetRequested(ctx context.Context, payload *guildevents.ResetRequestedPayload) ([]handlerwrapper.Result, error)
}

// GuildHandlers implements the Handlers interface for guild events.
type GuildHandlers struct {
	service guildservice.Service
}

var _ Handlers = (*GuildHandlers)(nil)

// NewGuildHandlers creates a new GuildHandlers instance.
func NewGuildHandlers(service guildservice.Service) *GuildHandlers {
	return &GuildHandlers{service: service}
}

// HandleSetupRequested handles the /setup command.
func (h *GuildHandlers) HandleSetupRequested(ctx context.Context, payload *guildevents.SetupRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SetupConfig(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, guildevents.ConfigSaved, guildevents.SetupFailed), nil
}

// HandleConfigRequested answers configuration lookups.
func (h *GuildHandlers) HandleConfigRequested(ctx context.Context, payload *guildevents.ConfigRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetConfig(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, guildevents.ConfigResult, guildevents.ConfigFailed), nil
}

// HandleResetRequested removes a guild's configuration.
func (h *GuildHandlers) HandleResetRequested(ctx context.Context, payload *guildevents.ResetRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResetConfig(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapOperationResult(result, guildevents.ConfigDeleted, guildevents.ResetFailed), nil
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

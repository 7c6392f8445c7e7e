package guildservice

import (
	"context"

	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Service manages per-guild board configuration.
type Service interface {
	SetupConfig(ctx context.Context, payload guildevents.SetupRequestedPayload) (results.OperationResult, error)
	GetConfig(ctx context.Context, payload guildevents.ConfigRequestedPayload) (results.OperationResult, error)
	ResetConfig(ctx context.Context, payload guildevents.ResetRequestedPayload) (results.OperationResult, error)
}

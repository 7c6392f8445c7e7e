package guildservice

import (
	"context"
	"errors"

	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// GetConfig looks up the guild's configuration.
func (s *GuildService) GetConfig(ctx context.Context, payload guildevents.ConfigRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetConfig", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		config, err := s.repo.GetConfig(ctx, payload.GuildID)
		if err != nil {
			if errors.Is(err, guilddb.ErrNotFound) {
				return guildFailure(payload.GuildID, ErrGuildNotConfigured), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&guildevents.ConfigPayload{Config: *config}), nil
	})
}

// ResetConfig removes the guild's configuration. The board stops reacting to
// the guild's threads until /setup runs again; stored quests are untouched.
func (s *GuildService) ResetConfig(ctx context.Context, payload guildevents.ResetRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResetConfig", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if !payload.IsAdmin {
			return guildFailure(payload.GuildID, ErrNotAuthorized), nil
		}

		if err := s.repo.DeleteConfig(ctx, payload.GuildID); err != nil {
			if errors.Is(err, guilddb.ErrNotFound) {
				return guildFailure(payload.GuildID, ErrGuildNotConfigured), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&guildevents.ConfigDeletedPayload{GuildID: payload.GuildID}), nil
	})
}

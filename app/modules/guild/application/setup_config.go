package guildservice

import (
	"context"
	"fmt"

	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// validPingRoleKeys is the fixed set of (mode, type) notification slots.
var validPingRoleKeys = map[guildtypes.PingRoleKey]struct{}{
	guildtypes.PingRoleKeyFor(questtypes.ModeOnline, questtypes.TypeOneshot):   {},
	guildtypes.PingRoleKeyFor(questtypes.ModeOnline, questtypes.TypeCampaign):  {},
	guildtypes.PingRoleKeyFor(questtypes.ModeOffline, questtypes.TypeOneshot):  {},
	guildtypes.PingRoleKeyFor(questtypes.ModeOffline, questtypes.TypeCampaign): {},
}

// SetupConfig saves the guild's board configuration (upsert). Re-running
// /setup replaces the previous configuration wholesale.
func (s *GuildService) SetupConfig(ctx context.Context, payload guildevents.SetupRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SetupConfig", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if !payload.IsAdmin {
			return guildFailure(payload.GuildID, ErrNotAuthorized), nil
		}
		if payload.ForumChannelID == "" || payload.EmbedChannelID == "" {
			return guildFailure(payload.GuildID, ErrMissingChannels), nil
		}

		joinMode := guildtypes.JoinDirect
		switch guildtypes.JoinMode(payload.JoinMode) {
		case "", guildtypes.JoinDirect:
		case guildtypes.JoinModerated:
			joinMode = guildtypes.JoinModerated
		default:
			return guildFailure(payload.GuildID, ErrInvalidJoinMode), nil
		}

		pingRoles := make(map[guildtypes.PingRoleKey]string, len(payload.PingRoles))
		for key, roleID := range payload.PingRoles {
			k := guildtypes.PingRoleKey(key)
			if _, ok := validPingRoleKeys[k]; !ok {
				return guildFailure(payload.GuildID, fmt.Errorf("%w: %s", ErrInvalidPingRole, key)), nil
			}
			if roleID != "" {
				pingRoles[k] = roleID
			}
		}

		config := &guildtypes.GuildConfig{
			GuildID:        payload.GuildID,
			ForumChannelID: payload.ForumChannelID,
			EmbedChannelID: payload.EmbedChannelID,
			PingRoles:      pingRoles,
			JoinMode:       joinMode,
		}

		if err := s.repo.SaveConfig(ctx, config); err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&guildevents.ConfigSavedPayload{Config: *config}), nil
	})
}

package guilddb

import (
	"context"
	"errors"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

// ErrNotFound means no config exists for the guild.
var ErrNotFound = errors.New("guild config not found")

// Repository is the guild configuration persistence contract.
type Repository interface {
	// GetConfig returns the guild's config, or ErrNotFound.
	GetConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error)
	// SaveConfig inserts or replaces the config (upsert on guild_id).
	SaveConfig(ctx context.Context, config *guildtypes.GuildConfig) error
	DeleteConfig(ctx context.Context, guildID questtypes.GuildID) error
}

// Package guildevents defines the guild configuration topics and payloads.
package guildevents

import (
	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

// Inbound topics.
const (
	SetupRequested  = "guild.setup.requested"
	ConfigRequested = "guild.config.requested"
	ResetRequested  = "guild.reset.requested"
)

// Outbound topics.
const (
	ConfigSaved   = "guild.config.saved"
	SetupFailed   = "guild.setup.failed"
	ConfigResult  = "guild.config"
	ConfigFailed  = "guild.config.failed"
	ConfigDeleted = "guild.config.deleted"
	ResetFailed   = "guild.reset.failed"
)

// SetupRequestedPayload carries the /setup command. PingRoles maps the
// MODE_TYPE keys (e.g. ONLINE_ONESHOT) to role ids; unknown keys are
// rejected.
type SetupRequestedPayload struct {
	GuildID        questtypes.GuildID   `json:"guild_id"`
	ActorID        questtypes.UserID    `json:"actor_id"`
	IsAdmin        bool                 `json:"is_admin"`
	ForumChannelID questtypes.ChannelID `json:"forum_channel_id"`
	EmbedChannelID questtypes.ChannelID `json:"embed_channel_id"`
	PingRoles      map[string]string    `json:"ping_roles,omitempty"`
	JoinMode       string               `json:"join_mode,omitempty"`
}

// ConfigRequestedPayload looks up a guild's configuration.
type ConfigRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
}

// ResetRequestedPayload removes a guild's configuration (admin only).
type ResetRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
	IsAdmin bool               `json:"is_admin"`
}

// ConfigSavedPayload announces a saved configuration.
type ConfigSavedPayload struct {
	Config guildtypes.GuildConfig `json:"config"`
}

// ConfigPayload answers a config lookup.
type ConfigPayload struct {
	Config guildtypes.GuildConfig `json:"config"`
}

// ConfigDeletedPayload announces a removed configuration.
type ConfigDeletedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
}

// GuildFailedPayload is the generic rejection shape for guild operations.
type GuildFailedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	Reason  string             `json:"reason"`
}

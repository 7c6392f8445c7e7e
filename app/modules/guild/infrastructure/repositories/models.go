package guilddb

import (
	"time"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/uptrace/bun"
)

// GuildConfig is the persisted per-server setup. PingRoles is jsonb keyed by
// the (mode, type) combination.
type GuildConfig struct {
	bun.BaseModel `bun:"table:guild_configs,alias:g"`

	GuildID        questtypes.GuildID                  `bun:"guild_id,pk,notnull,type:varchar(20)"`
	ForumChannelID questtypes.ChannelID                `bun:"forum_channel_id,nullzero,type:varchar(20)"`
	EmbedChannelID questtypes.ChannelID                `bun:"embed_channel_id,nullzero,type:varchar(20)"`
	PingRoles      map[guildtypes.PingRoleKey]string   `bun:"ping_roles,type:jsonb"`
	JoinMode       guildtypes.JoinMode                 `bun:"join_mode,notnull,default:'DIRECT',type:varchar(10)"`
	CreatedAt      time.Time                           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time                           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toDomainConfig(m *GuildConfig) *guildtypes.GuildConfig {
	if m == nil {
		return nil
	}
	return &guildtypes.GuildConfig{
		GuildID:        m.GuildID,
		ForumChannelID: m.ForumChannelID,
		EmbedChannelID: m.EmbedChannelID,
		PingRoles:      m.PingRoles,
		JoinMode:       m.JoinMode,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDBConfig(c *guildtypes.GuildConfig) *GuildConfig {
	if c == nil {
		return nil
	}
	return &GuildConfig{
		GuildID:        c.GuildID,
		ForumChannelID: c.ForumChannelID,
		EmbedChannelID: c.EmbedChannelID,
		PingRoles:      c.PingRoles,
		JoinMode:       c.EffectiveJoinMode(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

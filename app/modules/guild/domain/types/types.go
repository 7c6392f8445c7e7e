// Package guildtypes holds the per-guild configuration value types.
package guildtypes

import (
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

// JoinMode selects the guild's interaction model for the quest join button.
type JoinMode string

const (
	// JoinDirect appends the clicker straight onto the roster or waitlist.
	JoinDirect JoinMode = "DIRECT"
	// JoinModerated routes the click through an organizer accept/decline
	// decision.
	JoinModerated JoinMode = "MODERATED"
)

// PingRoleKey selects one of the four notification roles by the quest's
// (mode, type) combination, e.g. "ONLINE_ONESHOT".
type PingRoleKey string

// PingRoleKeyFor builds the lookup key. Either part may be unset, in which
// case no key (and so no ping role) applies.
func PingRoleKeyFor(mode questtypes.QuestMode, questType questtypes.QuestType) PingRoleKey {
	if mode == "" || questType == "" {
		return ""
	}
	return PingRoleKey(string(mode) + "_" + string(questType))
}

// GuildConfig is the per-server setup written by /setup.
type GuildConfig struct {
	GuildID questtypes.GuildID `json:"guild_id"`

	// ForumChannelID is the forum watched for new recruitment threads.
	ForumChannelID questtypes.ChannelID `json:"forum_channel_id"`
	// EmbedChannelID is where quest status embeds are posted.
	EmbedChannelID questtypes.ChannelID `json:"embed_channel_id"`

	// PingRoles maps (mode, type) combinations to optional notification
	// role ids. At most four entries.
	PingRoles map[PingRoleKey]string `json:"ping_roles,omitempty"`

	JoinMode JoinMode `json:"join_mode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PingRoleFor returns the configured notification role for the combination,
// or empty when none is set.
func (c *GuildConfig) PingRoleFor(mode questtypes.QuestMode, questType questtypes.QuestType) string {
	key := PingRoleKeyFor(mode, questType)
	if key == "" || c.PingRoles == nil {
		return ""
	}
	return c.PingRoles[key]
}

// EffectiveJoinMode defaults unset configs to direct joins.
func (c *GuildConfig) EffectiveJoinMode() JoinMode {
	if c == nil || c.JoinMode == "" {
		return JoinDirect
	}
	return c.JoinMode
}

// Package statsevents defines the board statistics topics and payloads.
package statsevents

import (
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

// Inbound topics.
const (
	OverviewRequested = "stats.overview.requested"
	ExportRequested   = "stats.export.requested"
	ClearRequested    = "stats.clear.requested"
)

// Outbound topics.
const (
	OverviewResult = "stats.overview"
	OverviewFailed = "stats.overview.failed"
	ExportResult   = "stats.export"
	ExportFailed   = "stats.export.failed"
	Cleared        = "stats.cleared"
	ClearFailed    = "stats.clear.failed"
)

// OverviewRequestedPayload asks for a guild's board statistics, optionally
// restricted to one status.
type OverviewRequestedPayload struct {
	GuildID questtypes.GuildID     `json:"guild_id"`
	ActorID questtypes.UserID      `json:"actor_id"`
	Status  questtypes.QuestStatus `json:"status,omitempty"`
}

// ExportRequestedPayload asks for the spreadsheet/chart export.
type ExportRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
}

// ClearRequestedPayload wipes all of a guild's quests (admin only).
type ClearRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
	IsAdmin bool               `json:"is_admin"`
}

// SystemCount is one entry of the most-played-systems ranking.
type SystemCount struct {
	System string `json:"system"`
	Count  int    `json:"count"`
}

// GuildStats aggregates a guild's board state.
type GuildStats struct {
	TotalQuests     int                            `json:"total_quests"`
	RosterSeats     int                            `json:"roster_seats"`
	WaitlistedSeats int                            `json:"waitlisted_seats"`
	ByStatus        map[questtypes.QuestStatus]int `json:"by_status"`
	ByMode          map[questtypes.QuestMode]int   `json:"by_mode"`
	ByType          map[questtypes.QuestType]int   `json:"by_type"`
	TopSystems      []SystemCount                  `json:"top_systems"`
}

// OverviewPayload answers an overview request.
type OverviewPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	Stats   GuildStats         `json:"stats"`
}

// ExportPayload carries the rendered artifacts. Workbook is the xlsx bytes;
// Chart is a PNG status breakdown, empty when the guild has no quests.
type ExportPayload struct {
	GuildID  questtypes.GuildID `json:"guild_id"`
	Filename string             `json:"filename"`
	Workbook []byte             `json:"workbook"`
	Chart    []byte             `json:"chart,omitempty"`
}

// ClearedPayload reports how many quests a wipe removed.
type ClearedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	Deleted int                `json:"deleted"`
}

// StatsFailedPayload is the generic rejection shape for stats operations.
type StatsFailedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	Reason  string             `json:"reason"`
}

// Package questevents defines the topics and payloads on the quest side of
// the bus. Requests arrive from the Discord gateway service; results and
// render commands flow back to it.
package questevents

import (
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/discord"
)

// Inbound topics.
const (
	ThreadCreated       = "discord.thread.created"
	RecruitRequested    = "quest.recruit.requested"
	RegisterRequested   = "quest.register.requested"
	JoinRequested       = "quest.join.requested"
	LeaveRequested      = "quest.leave.requested"
	DecisionRequested   = "quest.application.decision.requested"
	KickRequested       = "quest.kick.requested"
	StatusSetRequested  = "quest.status.set.requested"
	UpdateRequested     = "quest.update.requested"
	DeleteRequested     = "quest.delete.requested"
	InfoRequested       = "quest.info.requested"
	ListRequested       = "quest.list.requested"
	EmbedPosted         = "discord.quest.embed.posted"
)

// Outbound result topics.
const (
	QuestCreated       = "quest.created"
	QuestCreateFailed  = "quest.create.failed"
	QuestJoined        = "quest.joined"
	QuestWaitlisted    = "quest.waitlisted"
	QuestJoinFailed    = "quest.join.failed"
	ApplicationOpened  = "quest.application.submitted"
	DecisionResolved   = "quest.application.resolved"
	DecisionFailed     = "quest.application.decision.failed"
	QuestLeft          = "quest.left"
	QuestLeaveFailed   = "quest.leave.failed"
	QuestKicked        = "quest.kicked"
	QuestKickFailed    = "quest.kick.failed"
	QuestStatusSet     = "quest.status.updated"
	QuestStatusFailed  = "quest.status.set.failed"
	QuestUpdated       = "quest.updated"
	QuestUpdateFailed  = "quest.update.failed"
	QuestDeleted       = "quest.deleted"
	QuestDeleteFailed  = "quest.delete.failed"
	QuestInfoResult    = "quest.info"
	QuestInfoFailed    = "quest.info.failed"
	QuestListResult    = "quest.list"
	QuestListFailed    = "quest.list.failed"
)

// Outbound gateway command topics.
const (
	EmbedPost    = "discord.quest.embed.post"
	EmbedUpdate  = "discord.quest.embed.update"
	ThreadRename = "discord.quest.thread.rename"
	DMSend       = "discord.dm.send"
)

// ThreadCreatedPayload arrives when a thread appears in a watched forum
// channel. Body is the starter message content, used for system detection.
type ThreadCreatedPayload struct {
	GuildID         questtypes.GuildID   `json:"guild_id"`
	ThreadID        questtypes.ThreadID  `json:"thread_id"`
	ParentChannelID questtypes.ChannelID `json:"parent_channel_id"`
	AuthorID        questtypes.UserID    `json:"author_id"`
	Title           string               `json:"title"`
	Body            string               `json:"body"`
}

// RecruitRequestedPayload is the explicit /quest recruit path. The gateway
// has already created the recruitment thread.
type RecruitRequestedPayload struct {
	GuildID    questtypes.GuildID   `json:"guild_id"`
	ThreadID   questtypes.ThreadID  `json:"thread_id"`
	ActorID    questtypes.UserID    `json:"actor_id"`
	Title      string               `json:"title"`
	Mode       questtypes.QuestMode `json:"mode,omitempty"`
	QuestType  questtypes.QuestType `json:"quest_type,omitempty"`
	System     string               `json:"system,omitempty"`
	MaxPlayers int                  `json:"max_players"`
	Body       string               `json:"body,omitempty"`
}

// RegisterRequestedPayload registers an existing thread as a quest.
type RegisterRequestedPayload struct {
	GuildID    questtypes.GuildID  `json:"guild_id"`
	ThreadID   questtypes.ThreadID `json:"thread_id"`
	ActorID    questtypes.UserID   `json:"actor_id"`
	IsAdmin    bool                `json:"is_admin"`
	Title      string              `json:"title"`
	Body       string              `json:"body,omitempty"`
	MaxPlayers int                 `json:"max_players"`
}

// JoinRequestedPayload is a join/apply button click or /quest join.
type JoinRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	QuestID questtypes.QuestID `json:"quest_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
	Message string             `json:"message,omitempty"`
}

// LeaveRequestedPayload removes the actor from roster or waitlist.
type LeaveRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	QuestID questtypes.QuestID `json:"quest_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
}

// DecisionRequestedPayload carries an organizer's accept/decline click.
// Token is the signed decision token minted when the application opened.
type DecisionRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
	IsAdmin bool               `json:"is_admin"`
	Token   string             `json:"token"`
	Accept  bool               `json:"accept"`
}

// KickRequestedPayload removes a roster member (organizer/admin only).
type KickRequestedPayload struct {
	GuildID  questtypes.GuildID `json:"guild_id"`
	QuestID  questtypes.QuestID `json:"quest_id"`
	ActorID  questtypes.UserID  `json:"actor_id"`
	IsAdmin  bool               `json:"is_admin"`
	TargetID questtypes.UserID  `json:"target_id"`
}

// StatusSetRequestedPayload backs /quest complete, /quest cancel and the
// explicit status form.
type StatusSetRequestedPayload struct {
	GuildID questtypes.GuildID     `json:"guild_id"`
	QuestID questtypes.QuestID     `json:"quest_id"`
	ActorID questtypes.UserID      `json:"actor_id"`
	IsAdmin bool                   `json:"is_admin"`
	Status  questtypes.QuestStatus `json:"status"`
}

// UpdateRequestedPayload overwrites a subset of quest parameters. Nil fields
// are left untouched.
type UpdateRequestedPayload struct {
	GuildID    questtypes.GuildID      `json:"guild_id"`
	QuestID    questtypes.QuestID      `json:"quest_id"`
	ActorID    questtypes.UserID       `json:"actor_id"`
	IsAdmin    bool                    `json:"is_admin"`
	Status     *questtypes.QuestStatus `json:"status,omitempty"`
	Mode       *questtypes.QuestMode   `json:"mode,omitempty"`
	QuestType  *questtypes.QuestType   `json:"quest_type,omitempty"`
	System     *string                 `json:"system,omitempty"`
	MaxPlayers *int                    `json:"max_players,omitempty"`
	Title      *string                 `json:"title,omitempty"`
}

// DeleteRequestedPayload purges a quest after a DELETED render.
type DeleteRequestedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	QuestID questtypes.QuestID `json:"quest_id"`
	ActorID questtypes.UserID  `json:"actor_id"`
	IsAdmin bool               `json:"is_admin"`
}

// InfoRequestedPayload looks a quest up by id or by its thread.
type InfoRequestedPayload struct {
	GuildID  questtypes.GuildID  `json:"guild_id"`
	QuestID  questtypes.QuestID  `json:"quest_id,omitempty"`
	ThreadID questtypes.ThreadID `json:"thread_id,omitempty"`
	ActorID  questtypes.UserID   `json:"actor_id"`
}

// ListRequestedPayload lists a guild's quests, optionally by status.
type ListRequestedPayload struct {
	GuildID questtypes.GuildID     `json:"guild_id"`
	ActorID questtypes.UserID      `json:"actor_id"`
	Status  questtypes.QuestStatus `json:"status,omitempty"`
}

// EmbedPostedPayload is the gateway's ack after posting a quest embed,
// carrying the ids needed for later edits.
type EmbedPostedPayload struct {
	QuestID   questtypes.QuestID   `json:"quest_id"`
	ChannelID questtypes.ChannelID `json:"channel_id"`
	MessageID questtypes.MessageID `json:"message_id"`
}

// QuestCreatedPayload announces a new quest. PingRoleID is the guild's
// configured notification role for the (mode, type) combination, if any.
// EmbedChannelID and JoinMode let the handler build the embed post command
// without a second config lookup.
type QuestCreatedPayload struct {
	Quest          questtypes.Quest     `json:"quest"`
	EmbedChannelID questtypes.ChannelID `json:"embed_channel_id,omitempty"`
	JoinMode       string               `json:"join_mode"`
	PingRoleID     string               `json:"ping_role_id,omitempty"`
	SystemUnknown  bool                 `json:"system_unknown"`
}

// QuestFailedPayload is the generic rejection shape for every operation.
type QuestFailedPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	QuestID questtypes.QuestID `json:"quest_id,omitempty"`
	UserID  questtypes.UserID  `json:"user_id,omitempty"`
	Reason  string             `json:"reason"`
}

// QuestJoinedPayload reports a successful roster join.
type QuestJoinedPayload struct {
	Quest  questtypes.Quest  `json:"quest"`
	UserID questtypes.UserID `json:"user_id"`
}

// QuestWaitlistedPayload reports a join that landed on the waitlist.
type QuestWaitlistedPayload struct {
	Quest    questtypes.Quest  `json:"quest"`
	UserID   questtypes.UserID `json:"user_id"`
	Position int               `json:"position"`
}

// ApplicationOpenedPayload reports a moderated application now waiting on
// the organizer. DecisionToken routes the accept/decline buttons.
type ApplicationOpenedPayload struct {
	Quest         questtypes.Quest       `json:"quest"`
	Application   questtypes.Application `json:"application"`
	DecisionToken string                 `json:"decision_token"`
}

// DecisionResolvedPayload reports a terminal accept/decline outcome.
// Waitlisted is set when an accept raced a direct join and the freed
// capacity vanished between the capacity check and the roster write.
type DecisionResolvedPayload struct {
	Quest       questtypes.Quest       `json:"quest"`
	Application questtypes.Application `json:"application"`
	Accepted    bool                   `json:"accepted"`
	Waitlisted  bool                   `json:"waitlisted"`
}

// QuestLeftPayload reports a leave; PromotedID is the waitlist head moved
// into the freed roster slot, if any.
type QuestLeftPayload struct {
	Quest      questtypes.Quest  `json:"quest"`
	UserID     questtypes.UserID `json:"user_id"`
	FromRoster bool              `json:"from_roster"`
	PromotedID questtypes.UserID `json:"promoted_id,omitempty"`
}

// QuestKickedPayload reports an organizer removal, with the same promotion
// semantics as a leave.
type QuestKickedPayload struct {
	Quest      questtypes.Quest  `json:"quest"`
	TargetID   questtypes.UserID `json:"target_id"`
	PromotedID questtypes.UserID `json:"promoted_id,omitempty"`
}

// QuestStatusSetPayload reports an explicit status change.
type QuestStatusSetPayload struct {
	Quest    questtypes.Quest       `json:"quest"`
	Previous questtypes.QuestStatus `json:"previous"`
}

// QuestUpdatedPayload reports a parameter update.
type QuestUpdatedPayload struct {
	Quest questtypes.Quest `json:"quest"`
}

// QuestDeletedPayload reports a purge. The snapshot carries the state the
// DELETED render was built from.
type QuestDeletedPayload struct {
	Quest questtypes.Quest `json:"quest"`
}

// QuestInfoPayload answers an info lookup.
type QuestInfoPayload struct {
	Quest questtypes.Quest `json:"quest"`
}

// QuestListPayload answers a list lookup.
type QuestListPayload struct {
	GuildID questtypes.GuildID `json:"guild_id"`
	Quests  []questtypes.Quest `json:"quests"`
}

// EmbedPostPayload asks the gateway to post a fresh quest embed.
type EmbedPostPayload struct {
	QuestID    questtypes.QuestID   `json:"quest_id"`
	GuildID    questtypes.GuildID   `json:"guild_id"`
	ChannelID  questtypes.ChannelID `json:"channel_id"`
	Embed      discord.Embed        `json:"embed"`
	Components []discord.ActionRow  `json:"components,omitempty"`
	PingRoleID string               `json:"ping_role_id,omitempty"`
}

// EmbedUpdatePayload asks the gateway to edit an existing quest embed.
type EmbedUpdatePayload struct {
	QuestID    questtypes.QuestID   `json:"quest_id"`
	ChannelID  questtypes.ChannelID `json:"channel_id"`
	MessageID  questtypes.MessageID `json:"message_id"`
	Embed      discord.Embed        `json:"embed"`
	Components []discord.ActionRow  `json:"components,omitempty"`
}

// ThreadRenamePayload asks the gateway to rename the recruitment thread.
type ThreadRenamePayload struct {
	QuestID  questtypes.QuestID  `json:"quest_id"`
	ThreadID questtypes.ThreadID `json:"thread_id"`
	Title    string              `json:"title"`
}

// DMSendPayload asks the gateway to deliver a direct message. Components
// carry the accept/decline buttons on application notices.
type DMSendPayload struct {
	UserID     questtypes.UserID   `json:"user_id"`
	Content    string              `json:"content"`
	Components []discord.ActionRow `json:"components,omitempty"`
	SentAt     time.Time           `json:"sent_at,omitempty"`
}

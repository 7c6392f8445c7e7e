// Package questsync keeps the external surfaces (embed message, thread
// title) in line with the stored quest record, best effort.
package questsync

import (
	"fmt"
	"strings"
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/discord"
	"github.com/aetherius-rpg/questboard/internal/titleparser"
)

// Component custom-id prefixes. The id is rebuilt from the stored record on
// every sync, so button routing survives restarts.
const (
	CustomIDJoin    = "quest_join:"
	CustomIDLeave   = "quest_leave:"
	CustomIDAccept  = "app_accept:"
	CustomIDDecline = "app_decline:"
)

// CanonicalTitle renders the bracket-tagged thread title for a quest,
// optionally overriding the status (the DELETED render uses this).
func CanonicalTitle(quest *questtypes.Quest, statusOverride questtypes.QuestStatus) string {
	status := quest.Status
	if statusOverride != "" {
		status = statusOverride
	}
	return titleparser.BuildCanonicalTitle(titleparser.Fields{
		Status:    string(status),
		Mode:      string(quest.Mode),
		QuestType: string(quest.QuestType),
		System:    quest.System,
		Title:     quest.Title,
	})
}

// Embed renders the quest status view posted to the embed channel.
func Embed(quest *questtypes.Quest) discord.Embed {
	return buildEmbed(quest, quest.Status)
}

// DeletedEmbed renders the terminal view pushed just before the record is
// purged.
func DeletedEmbed(quest *questtypes.Quest) discord.Embed {
	return buildEmbed(quest, questtypes.StatusDeleted)
}

func buildEmbed(quest *questtypes.Quest, status questtypes.QuestStatus) discord.Embed {
	fields := []discord.EmbedField{
		{Name: "Quest ID", Value: string(quest.ID), Inline: true},
		{Name: "Status", Value: string(status), Inline: true},
		{Name: "Organizer", Value: mention(quest.DMID), Inline: true},
	}
	if quest.Mode != "" {
		fields = append(fields, discord.EmbedField{Name: "Mode", Value: string(quest.Mode), Inline: true})
	}
	if quest.QuestType != "" {
		fields = append(fields, discord.EmbedField{Name: "Type", Value: string(quest.QuestType), Inline: true})
	}
	fields = append(fields,
		discord.EmbedField{Name: "System", Value: quest.System, Inline: true},
		discord.EmbedField{Name: rosterHeading(quest), Value: rosterBody(quest.Roster), Inline: false},
	)
	if len(quest.Waitlist) > 0 {
		fields = append(fields, discord.EmbedField{Name: "Waitlist", Value: numberedList(quest.Waitlist), Inline: false})
	}
	fields = append(fields, discord.EmbedField{Name: "Thread", Value: quest.ThreadURL(), Inline: false})

	return discord.Embed{
		Title:     quest.Title,
		Color:     titleparser.StatusColor(string(status)),
		Fields:    fields,
		Footer:    &discord.EmbedFooter{Text: "Quest Board"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func rosterHeading(quest *questtypes.Quest) string {
	if quest.MaxPlayers > 0 {
		return fmt.Sprintf("Roster (%d/%d)", len(quest.Roster), quest.MaxPlayers)
	}
	return fmt.Sprintf("Roster (%d)", len(quest.Roster))
}

func rosterBody(roster []questtypes.UserID) string {
	if len(roster) == 0 {
		return "No players yet."
	}
	return numberedList(roster)
}

func numberedList(users []questtypes.UserID) string {
	var b strings.Builder
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s\n", i+1, mention(u))
	}
	return strings.TrimRight(b.String(), "\n")
}

func mention(user questtypes.UserID) string {
	return fmt.Sprintf("<@%s>", user)
}

// RecruitComponents builds the Join/Apply and Leave buttons under the embed.
// joinModerated flips the first button's label to match the flow.
func RecruitComponents(questID questtypes.QuestID, joinModerated bool) []discord.ActionRow {
	joinLabel := "Join"
	if joinModerated {
		joinLabel = "Apply"
	}
	return []discord.ActionRow{{
		Buttons: []discord.Button{
			{Label: joinLabel, Style: discord.ButtonStyleSuccess, CustomID: CustomIDJoin + string(questID)},
			{Label: "Leave", Style: discord.ButtonStyleSecondary, CustomID: CustomIDLeave + string(questID)},
		},
	}}
}

// DisabledComponents renders the control set greyed out for terminal views.
func DisabledComponents(questID questtypes.QuestID, joinModerated bool) []discord.ActionRow {
	rows := RecruitComponents(questID, joinModerated)
	for i := range rows {
		for j := range rows[i].Buttons {
			rows[i].Buttons[j].Disabled = true
		}
	}
	return rows
}

// DecisionComponents builds the organizer's accept/decline buttons; the
// signed token in the custom id binds the click to one application.
func DecisionComponents(token string) []discord.ActionRow {
	return []discord.ActionRow{{
		Buttons: []discord.Button{
			{Label: "Accept", Style: discord.ButtonStyleSuccess, CustomID: CustomIDAccept + token},
			{Label: "Decline", Style: discord.ButtonStyleDanger, CustomID: CustomIDDecline + token},
		},
	}}
}

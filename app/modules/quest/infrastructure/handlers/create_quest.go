package questhandlers

import (
	"context"
	"errors"
	"fmt"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questsync "github.com/aetherius-rpg/questboard/app/modules/quest/sync"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
)

// HandleThreadCreated handles the forum thread hook. Threads outside the
// recruitment forum and unconfigured guilds come back as no-ops and publish
// nothing.
func (h *QuestHandlers) HandleThreadCreated(ctx context.Context, payload *questevents.ThreadCreatedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.HandleThreadCreated(ctx, *payload)
	if err != nil {
		return nil, err
	}
	if created, ok := result.Success.(*questevents.QuestCreatedPayload); ok {
		return announceQuest(created), nil
	}
	return mapOperationResult(result, questevents.QuestCreated, questevents.QuestCreateFailed), nil
}

// HandleRecruitRequested handles the explicit /quest recruit command.
func (h *QuestHandlers) HandleRecruitRequested(ctx context.Context, payload *questevents.RecruitRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CreateQuest(ctx, *payload)
	if err != nil {
		return nil, err
	}
	if created, ok := result.Success.(*questevents.QuestCreatedPayload); ok {
		return announceQuest(created), nil
	}
	return mapOperationResult(result, questevents.QuestCreated, questevents.QuestCreateFailed), nil
}

// HandleRegisterRequested adopts an existing thread as a quest.
func (h *QuestHandlers) HandleRegisterRequested(ctx context.Context, payload *questevents.RegisterRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RegisterThread(ctx, *payload)
	if err != nil {
		return nil, err
	}
	if created, ok := result.Success.(*questevents.QuestCreatedPayload); ok {
		return announceQuest(created), nil
	}
	return mapOperationResult(result, questevents.QuestCreated, questevents.QuestCreateFailed), nil
}

// announceQuest fans a fresh quest out: the created event, the embed post
// command, the canonical thread rename, and a nudge DM when the game system
// could not be determined.
func announceQuest(created *questevents.QuestCreatedPayload) []handlerwrapper.Result {
	quest := created.Quest
	moderated := created.JoinMode == string(guildtypes.JoinModerated)

	out := []handlerwrapper.Result{{Topic: questevents.QuestCreated, Payload: created}}

	if created.EmbedChannelID != "" {
		out = append(out, handlerwrapper.Result{
			Topic: questevents.EmbedPost,
			Payload: questevents.EmbedPostPayload{
				QuestID:    quest.ID,
				GuildID:    quest.GuildID,
				ChannelID:  created.EmbedChannelID,
				Embed:      questsync.Embed(&quest),
				Components: questsync.RecruitComponents(quest.ID, moderated),
				PingRoleID: created.PingRoleID,
			},
		})
	}

	out = append(out, handlerwrapper.Result{
		Topic: questevents.ThreadRename,
		Payload: questevents.ThreadRenamePayload{
			QuestID:  quest.ID,
			ThreadID: quest.ThreadID,
			Title:    questsync.CanonicalTitle(&quest, ""),
		},
	})

	if created.SystemUnknown {
		out = append(out, handlerwrapper.Result{
			Topic: questevents.DMSend,
			Payload: questevents.DMSendPayload{
				UserID:  quest.DMID,
				Content: fmt.Sprintf("I couldn't tell which game system %q uses. Use /quest update to set it so players can find your quest.", quest.Title),
			},
		})
	}

	return out
}

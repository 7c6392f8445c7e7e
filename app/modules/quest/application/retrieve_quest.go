package questservice

import (
	"context"
	"errors"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Info looks a quest up by id, falling back to the thread the command ran
// in when no id was given.
func (s *QuestService) Info(ctx context.Context, payload questevents.InfoRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Info", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		var (
			quest *questtypes.Quest
			err   error
		)
		switch {
		case payload.QuestID != "":
			quest, err = s.repo.Get(ctx, payload.QuestID)
		case payload.ThreadID != "":
			quest, err = s.repo.GetByThread(ctx, payload.ThreadID)
		default:
			return questFailure(payload.GuildID, "", payload.ActorID, ErrQuestNotFound), nil
		}
		if err != nil {
			if errors.Is(err, questdb.ErrNotFound) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrQuestNotFound), nil
			}
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: &questevents.QuestInfoPayload{
			Quest: *quest,
		}}, nil
	})
}

// List returns the guild's quests, optionally filtered by status.
func (s *QuestService) List(ctx context.Context, payload questevents.ListRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "List", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		quests, err := s.repo.ListByGuild(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if payload.Status != "" {
			filtered := quests[:0]
			for _, q := range quests {
				if q.Status == payload.Status {
					filtered = append(filtered, q)
				}
			}
			quests = filtered
		}

		return results.OperationResult{Success: &questevents.QuestListPayload{
			GuildID: payload.GuildID,
			Quests:  quests,
		}}, nil
	})
}

// AttachEmbedMessage records the embed location after the gateway posts it,
// so later syncs can edit the message in place.
func (s *QuestService) AttachEmbedMessage(ctx context.Context, payload questevents.EmbedPostedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "AttachEmbedMessage", "", func(ctx context.Context) (results.OperationResult, error) {
		res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
			quest.EmbedChannelID = payload.ChannelID
			quest.EmbedMessageID = payload.MessageID
			return results.OperationResult{Success: &questevents.QuestUpdatedPayload{
				Quest: *quest,
			}}, nil
		})
		if err != nil || res.Failure != nil {
			return res, err
		}
		// Push once now that the embed exists, so title and embed agree.
		s.syncFromResult(ctx, res)
		return res, nil
	})
}

package questservice

import (
	"context"
	"errors"
	"log/slog"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// Delete purges the record. A DELETED rendering is scheduled against the
// external surfaces first; the purge happens regardless of whether those
// pushes ever land.
func (s *QuestService) Delete(ctx context.Context, payload questevents.DeleteRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Delete", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		quest, err := s.repo.Get(ctx, payload.QuestID)
		if err != nil {
			if errors.Is(err, questdb.ErrNotFound) {
				return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrQuestNotFound), nil
			}
			return results.OperationResult{}, err
		}

		if !canManage(quest, payload.ActorID, payload.IsAdmin) {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrNotAuthorized), nil
		}

		// The job carries the full snapshot, so the record can go right away.
		if err := s.sync.EnqueueDeleteSync(ctx, *quest); err != nil {
			s.logger.WarnContext(ctx, "Failed to enqueue delete sync",
				slog.String("quest_id", string(quest.ID)),
				slog.Any("error", err),
			)
		}

		if err := s.repo.Delete(ctx, quest.ID); err != nil && !errors.Is(err, questdb.ErrNotFound) {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Quest deleted",
			slog.String("quest_id", string(quest.ID)),
			slog.String("guild_id", string(quest.GuildID)),
		)

		return results.OperationResult{Success: &questevents.QuestDeletedPayload{
			Quest: *quest,
		}}, nil
	})
}

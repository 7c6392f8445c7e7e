package statsservice

import (
	"context"
	"errors"

	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// ErrNotAuthorized guards the destructive wipe.
var ErrNotAuthorized = errors.New("only server admins can clear the board")

// Clear removes every quest of the guild and reports the count. External
// surfaces are not touched: threads and embeds of wiped quests simply go
// stale, which is the documented cost of the bulk operation.
func (s *StatsService) Clear(ctx context.Context, payload statsevents.ClearRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Clear", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if !payload.IsAdmin {
			return statsFailure(payload.GuildID, ErrNotAuthorized), nil
		}

		deleted, err := s.quests.ClearGuildQuests(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&statsevents.ClearedPayload{
			GuildID: payload.GuildID,
			Deleted: deleted,
		}), nil
	})
}

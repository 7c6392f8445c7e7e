package statsservice

import (
	"context"
	"sort"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// topSystemsLimit caps the most-played-systems ranking.
const topSystemsLimit = 10

// Overview aggregates the guild's quests into counters, optionally
// restricted to one status.
func (s *StatsService) Overview(ctx context.Context, payload statsevents.OverviewRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Overview", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		quests, err := s.quests.ListByGuild(ctx, payload.GuildID)
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

		return results.SuccessResult(&statsevents.OverviewPayload{
			GuildID: payload.GuildID,
			Stats:   aggregate(quests),
		}), nil
	})
}

func aggregate(quests []questtypes.Quest) statsevents.GuildStats {
	stats := statsevents.GuildStats{
		TotalQuests: len(quests),
		ByStatus:    make(map[questtypes.QuestStatus]int),
		ByMode:      make(map[questtypes.QuestMode]int),
		ByType:      make(map[questtypes.QuestType]int),
	}

	systems := make(map[string]int)
	for _, q := range quests {
		stats.RosterSeats += len(q.Roster)
		stats.WaitlistedSeats += len(q.Waitlist)
		stats.ByStatus[q.Status]++
		if q.Mode != "" {
			stats.ByMode[q.Mode]++
		}
		if q.QuestType != "" {
			stats.ByType[q.QuestType]++
		}
		if q.System != "" {
			systems[q.System]++
		}
	}

	for system, count := range systems {
		stats.TopSystems = append(stats.TopSystems, statsevents.SystemCount{System: system, Count: count})
	}
	sort.Slice(stats.TopSystems, func(i, j int) bool {
		if stats.TopSystems[i].Count != stats.TopSystems[j].Count {
			return stats.TopSystems[i].Count > stats.TopSystems[j].Count
		}
		return stats.TopSystems[i].System < stats.TopSystems[j].System
	})
	if len(stats.TopSystems) > topSystemsLimit {
		stats.TopSystems = stats.TopSystems[:topSystemsLimit]
	}

	return stats
}

// Package statsservice computes and exports board statistics.
package statsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QuestSource is the slice of the quest repository the stats module reads.
type QuestSource interface {
	ListByGuild(ctx context.Context, guildID questtypes.GuildID) ([]questtypes.Quest, error)
	ClearGuildQuests(ctx context.Context, guildID questtypes.GuildID) (int, error)
}

// OperationMetrics is the slice of the metrics surface the service records.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// Service answers statistics requests.
type Service interface {
	Overview(ctx context.Context, payload statsevents.OverviewRequestedPayload) (results.OperationResult, error)
	Export(ctx context.Context, payload statsevents.ExportRequestedPayload) (results.OperationResult, error)
	Clear(ctx context.Context, payload statsevents.ClearRequestedPayload) (results.OperationResult, error)
}

// StatsService implements the Service interface.
type StatsService struct {
	quests  QuestSource
	logger  *slog.Logger
	metrics OperationMetrics
	tracer  trace.Tracer
}

// NewStatsService creates a new StatsService.
func NewStatsService(quests QuestSource, logger *slog.Logger, metrics OperationMetrics, tracer trace.Tracer) *StatsService {
	return &StatsService{
		quests:  quests,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

func (s *StatsService) withTelemetry(
	ctx context.Context,
	operationName string,
	guildID questtypes.GuildID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("guild_id", string(guildID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "StatsService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "StatsService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("guild_id", string(guildID)),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "StatsService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("guild_id", string(guildID)),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "StatsService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "StatsService")
	return result, nil
}

func statsFailure(guildID questtypes.GuildID, reason error) results.OperationResult {
	return results.OperationResult{
		Failure: &statsevents.StatsFailedPayload{
			GuildID: guildID,
			Reason:  reason.Error(),
		},
	}
}

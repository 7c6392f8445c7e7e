// Package guildservice implements guild configuration management.
package guildservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationMetrics is the slice of the metrics surface the service records.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// GuildService implements the Service interface.
type GuildService struct {
	repo    guilddb.Repository
	logger  *slog.Logger
	metrics OperationMetrics
	tracer  trace.Tracer
}

// NewGuildService creates a new GuildService.
func NewGuildService(repo guilddb.Repository, logger *slog.Logger, metrics OperationMetrics, tracer trace.Tracer) *GuildService {
	return &GuildService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *GuildService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "GuildService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "GuildService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("guild_id", string(guildID)),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "GuildService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "GuildService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "GuildService")
	return result, nil
}

func guildFailure(guildID questtypes.GuildID, reason error) results.OperationResult {
	return results.OperationResult{
		Failure: &guildevents.GuildFailedPayload{
			GuildID: guildID,
			Reason:  reason.Error(),
		},
	}
}

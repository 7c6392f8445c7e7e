package questservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// casRetries bounds the reload-and-retry loop on version conflicts. Two
// concurrent operations on one quest resolve within a retry or two; more
// conflicts than this means something is systematically wrong.
const casRetries = 3

// OperationMetrics is the slice of the metrics surface the service records.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// QuestService implements the Service interface.
type QuestService struct {
	repo    questdb.Repository
	guilds  GuildConfigReader
	limiter ApplicationLimiter
	tokens  DecisionTokens
	sync    SyncEnqueuer
	logger  *slog.Logger
	metrics OperationMetrics
	tracer  trace.Tracer
}

// NewQuestService creates a new QuestService.
func NewQuestService(
	repo questdb.Repository,
	guilds GuildConfigReader,
	limiter ApplicationLimiter,
	tokens DecisionTokens,
	sync SyncEnqueuer,
	logger *slog.Logger,
	metrics OperationMetrics,
	tracer trace.Tracer,
) *QuestService {
	return &QuestService{
		repo:    repo,
		guilds:  guilds,
		limiter: limiter,
		tokens:  tokens,
		sync:    sync,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *QuestService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "QuestService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "QuestService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("guild_id", string(guildID)),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "QuestService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "QuestService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("guild_id", string(guildID)),
			slog.String("failure_type", fmt.Sprintf("%T", result.Failure)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "QuestService")
	return result, nil
}

// mutateFunc inspects and mutates a freshly loaded quest. Returning a
// Failure (or an error) aborts without writing; otherwise the quest is
// written back under compare-and-swap.
type mutateFunc func(quest *questtypes.Quest) (results.OperationResult, error)

// mutateQuest is the atomic read-decide-write cycle shared by every
// roster/status mutation. Version conflicts reload and re-run the decision
// so two concurrent joins cannot both take the last slot.
func (s *QuestService) mutateQuest(
	ctx context.Context,
	id questtypes.QuestID,
	fn mutateFunc,
) (results.OperationResult, error) {
	for attempt := 0; attempt <= casRetries; attempt++ {
		quest, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, questdb.ErrNotFound) {
				return questFailure("", id, "", ErrQuestNotFound), nil
			}
			return results.OperationResult{}, err
		}

		working := quest.Clone()
		result, err := fn(working)
		if err != nil {
			return results.OperationResult{}, err
		}
		if result.Failure != nil {
			return result, nil
		}

		err = s.repo.UpdateCAS(ctx, working)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, questdb.ErrVersionConflict) {
			return results.OperationResult{}, err
		}
		s.logger.DebugContext(ctx, "Version conflict, retrying quest mutation",
			slog.String("quest_id", string(id)),
			slog.Int("attempt", attempt+1),
		)
	}
	return results.OperationResult{}, fmt.Errorf("quest %s: gave up after %d version conflicts", id, casRetries+1)
}

// enqueueSync schedules the best-effort surface push. Enqueue failures are
// logged and swallowed; the stored record is already the source of truth.
func (s *QuestService) enqueueSync(ctx context.Context, quest *questtypes.Quest) {
	if err := s.sync.EnqueueSync(ctx, *quest); err != nil {
		s.logger.WarnContext(ctx, "Failed to enqueue quest sync",
			slog.String("quest_id", string(quest.ID)),
			slog.Any("error", err),
		)
	}
}

// canManage is the organizer-or-admin predicate, evaluated fresh per call.
func canManage(quest *questtypes.Quest, actor questtypes.UserID, isAdmin bool) bool {
	return actor == quest.DMID || isAdmin
}

func questFailure(guildID questtypes.GuildID, questID questtypes.QuestID, userID questtypes.UserID, reason error) results.OperationResult {
	return results.OperationResult{
		Failure: &questevents.QuestFailedPayload{
			GuildID: guildID,
			QuestID: questID,
			UserID:  userID,
			Reason:  reason.Error(),
		},
	}
}

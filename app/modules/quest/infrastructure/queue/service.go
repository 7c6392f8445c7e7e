// Package questqueue runs the best-effort quest sync pipeline on River.
// Jobs are fire and forget: MaxAttempts is 1, so a push that fails is
// dropped rather than replayed against state that has since moved on.
package questqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questsync "github.com/aetherius-rpg/questboard/app/modules/quest/sync"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// Metrics is the slice of the metrics surface the queue records.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService is the contract for the sync job queue.
type QueueService interface {
	EnqueueSync(ctx context.Context, quest questtypes.Quest) error
	EnqueueDeleteSync(ctx context.Context, quest questtypes.Quest) error
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules and runs quest sync jobs using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics Metrics
}

// NewService creates the River-backed sync queue. River needs its own pgx
// pool; the bun connection used elsewhere cannot be shared with it.
func NewService(ctx context.Context, dsn string, syncer *questsync.Syncer, logger *slog.Logger, metrics Metrics) (*Service, error) {
	ctxLogger := logger.With(
		slog.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSyncWorker(syncer, ctxLogger))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"quest_sync":       {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.InfoContext(ctx, "Quest sync queue initialized")
	return service, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.logger.InfoContext(ctx, "Quest sync queue started")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.logger.InfoContext(ctx, "Quest sync queue stopped")
	return nil
}

// HealthCheck verifies the queue's database connection.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue database unreachable: %w", err)
	}
	return nil
}

// EnqueueSync schedules one best-effort push of the quest's current state.
func (s *Service) EnqueueSync(ctx context.Context, quest questtypes.Quest) error {
	return s.insert(ctx, "enqueue_sync", QuestSyncJob{Quest: quest})
}

// EnqueueDeleteSync schedules the terminal DELETED render from a snapshot.
func (s *Service) EnqueueDeleteSync(ctx context.Context, quest questtypes.Quest) error {
	return s.insert(ctx, "enqueue_delete_sync", QuestSyncJob{Quest: quest, Deleted: true})
}

func (s *Service) insert(ctx context.Context, operation string, job QuestSyncJob) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, operation, "river")

	result, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       "quest_sync",
		MaxAttempts: 1,
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, operation, "river")
		return fmt.Errorf("failed to insert quest sync job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, operation, "river")
	s.metrics.RecordOperationDuration(ctx, operation, "river", time.Since(start))

	s.logger.DebugContext(ctx, "Quest sync job enqueued",
		slog.String("quest_id", string(job.Quest.ID)),
		slog.Bool("deleted", job.Deleted),
		slog.Int64("job_id", result.Job.ID),
	)
	return nil
}

package questqueue

import (
	"context"
	"log/slog"

	questsync "github.com/aetherius-rpg/questboard/app/modules/quest/sync"
	"github.com/riverqueue/river"
)

// SyncWorker executes quest sync jobs. The syncer itself swallows surface
// failures, so Work only errors on programming mistakes; with MaxAttempts 1
// a failed push is never replayed against fresher state.
type SyncWorker struct {
	river.WorkerDefaults[QuestSyncJob]

	syncer *questsync.Syncer
	logger *slog.Logger
}

// NewSyncWorker creates a new SyncWorker.
func NewSyncWorker(syncer *questsync.Syncer, logger *slog.Logger) *SyncWorker {
	return &SyncWorker{syncer: syncer, logger: logger}
}

func (w *SyncWorker) Work(ctx context.Context, job *river.Job[QuestSyncJob]) error {
	quest := job.Args.Quest

	w.logger.DebugContext(ctx, "Running quest sync job",
		slog.String("quest_id", string(quest.ID)),
		slog.Bool("deleted", job.Args.Deleted),
	)

	if job.Args.Deleted {
		w.syncer.SyncDeleted(ctx, &quest)
		return nil
	}
	w.syncer.SyncEverywhere(ctx, &quest)
	return nil
}

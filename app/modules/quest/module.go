// Package quest assembles the quest module: repository, service, sync queue
// and router.
package quest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	questservice "github.com/aetherius-rpg/questboard/app/modules/quest/application"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	questqueue "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/queue"
	questrouter "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/router"
	questsync "github.com/aetherius-rpg/questboard/app/modules/quest/sync"
	"github.com/aetherius-rpg/questboard/config"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
	"github.com/aetherius-rpg/questboard/pkg/jwt"
)

// Module represents the quest module.
type Module struct {
	QuestService questservice.Service
	QuestRouter  *questrouter.QuestRouter
	Queue        questqueue.QueueService
	Repo         questdb.Repository

	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// New creates the quest module and wires it onto the shared bus and router.
func New(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	guildRepo guilddb.Repository,
	bus eventbus.EventBus,
	router *message.Router,
	throttle *ratelimit.GuildThrottle,
) (*Module, error) {
	logger := obs.Logger

	questRepo := questdb.NewQuestDB(db)

	syncer := questsync.NewSyncer(questRepo, guildRepo, busPublisher{bus: bus}, logger, obs.Metrics)
	queue, err := questqueue.NewService(ctx, cfg.Postgres.DSN, syncer, logger, obs.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create quest sync queue: %w", err)
	}

	limiter := ratelimit.NewApplicationLimiter(cfg.Quest.ApplicationLimit, cfg.Quest.ApplicationWindow)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	service := questservice.NewQuestService(
		questRepo, guildRepo, limiter, tokens, queue,
		logger, obs.Metrics, obs.Tracer,
	)

	qRouter := questrouter.NewQuestRouter(logger, router, bus, throttle, obs.Metrics, obs.Tracer)
	if err := qRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure quest router: %w", err)
	}

	return &Module{
		QuestService:  service,
		QuestRouter:   qRouter,
		Queue:         queue,
		Repo:          questRepo,
		observability: obs,
	}, nil
}

// busPublisher adapts the event bus to the syncer's publisher port.
type busPublisher struct {
	bus eventbus.EventBus
}

func (p busPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return p.bus.PublishJSON(ctx, topic, payload)
}

// Run starts the module's queue workers and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting quest module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start quest sync queue", "error", err)
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Quest module goroutine stopped")
}

// Close stops the quest module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping quest module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.Queue.Stop(context.Background()); err != nil {
		logger.Error("Error stopping quest sync queue", "error", err)
	}

	logger.Info("Quest module stopped")
	return nil
}

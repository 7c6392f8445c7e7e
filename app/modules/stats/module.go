// Package stats assembles the statistics module.
package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	statsservice "github.com/aetherius-rpg/questboard/app/modules/stats/application"
	statsrouter "github.com/aetherius-rpg/questboard/app/modules/stats/infrastructure/router"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// Module represents the stats module.
type Module struct {
	StatsService statsservice.Service
	StatsRouter  *statsrouter.StatsRouter

	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// New creates the stats module on top of the quest store.
func New(
	ctx context.Context,
	obs *observability.Observability,
	quests statsservice.QuestSource,
	bus eventbus.EventBus,
	router *message.Router,
	throttle *ratelimit.GuildThrottle,
) (*Module, error) {
	service := statsservice.NewStatsService(quests, obs.Logger, obs.Metrics, obs.Tracer)

	sRouter := statsrouter.NewStatsRouter(obs.Logger, router, bus, throttle, obs.Metrics, obs.Tracer)
	if err := sRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure stats router: %w", err)
	}

	return &Module{
		StatsService:  service,
		StatsRouter:   sRouter,
		observability: obs,
	}, nil
}

// Run blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting stats module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Stats module goroutine stopped")
}

// Close stops the stats module.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.observability.Logger.Info("Stats module stopped")
	return nil
}

// Package guild assembles the guild module: repository, service and router.
package guild

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	guildservice "github.com/aetherius-rpg/questboard/app/modules/guild/application"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	guildrouter "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/router"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// Module represents the guild module.
type Module struct {
	GuildService guildservice.Service
	GuildRouter  *guildrouter.GuildRouter
	Repo         guilddb.Repository

	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// New creates the guild module and wires it onto the shared bus and router.
func New(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	throttle *ratelimit.GuildThrottle,
) (*Module, error) {
	repo := guilddb.NewGuildDB(db)
	service := guildservice.NewGuildService(repo, obs.Logger, obs.Metrics, obs.Tracer)

	gRouter := guildrouter.NewGuildRouter(obs.Logger, router, bus, throttle, obs.Metrics, obs.Tracer)
	if err := gRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure guild router: %w", err)
	}

	return &Module{
		GuildService:  service,
		GuildRouter:   gRouter,
		Repo:          repo,
		observability: obs,
	}, nil
}

// Run blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting guild module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Guild module goroutine stopped")
}

// Close stops the guild module.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.observability.Logger.Info("Guild module stopped")
	return nil
}

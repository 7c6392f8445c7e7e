// Package app assembles the quest board service: configuration, storage,
// event bus, the three modules and the ops endpoint.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	"github.com/aetherius-rpg/questboard/app/modules/guild"
	"github.com/aetherius-rpg/questboard/app/modules/quest"
	"github.com/aetherius-rpg/questboard/app/modules/stats"
	"github.com/aetherius-rpg/questboard/config"
	"github.com/aetherius-rpg/questboard/internal/db/bundb"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// Version is stamped by the build.
var Version = "dev"

// App holds the assembled service.
type App struct {
	Config        *config.Config
	Observability *observability.Observability

	DB  *bun.DB
	Bus eventbus.EventBus

	GuildModule *guild.Module
	QuestModule *quest.Module
	StatsModule *stats.Module

	opsServer *observability.OpsServer
	routers   []*message.Router
}

// New wires the application together. Each module gets its own watermill
// router so module middleware stays scoped to the module's handlers.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.Init(observability.Config{
		ServiceName:    "questboard",
		Environment:    cfg.Observability.Environment,
		Version:        Version,
		MetricsAddress: cfg.Observability.MetricsAddress,
		LogLevel:       cfg.Observability.LogLevel,
	})
	logger := obs.Logger

	db, err := bundb.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	throttle := ratelimit.NewGuildThrottle(rate.Limit(cfg.Quest.GuildRatePerSecond), cfg.Quest.GuildBurst)
	wmLogger := watermill.NewSlogLogger(logger)

	newRouter := func() (*message.Router, error) {
		return message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, wmLogger)
	}

	guildRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create guild router: %w", err)
	}
	guildModule, err := guild.New(ctx, obs, db, bus, guildRouter, throttle)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize guild module: %w", err)
	}

	questRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create quest router: %w", err)
	}
	questModule, err := quest.New(ctx, cfg, obs, db, guildModule.Repo, bus, questRouter, throttle)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quest module: %w", err)
	}

	statsRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create stats router: %w", err)
	}
	statsModule, err := stats.New(ctx, obs, questModule.Repo, bus, statsRouter, throttle)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats module: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		Bus:           bus,
		GuildModule:   guildModule,
		QuestModule:   questModule,
		StatsModule:   statsModule,
		routers:       []*message.Router{guildRouter, questRouter, statsRouter},
	}

	if cfg.Observability.MetricsAddress != "" {
		app.opsServer = observability.NewOpsServer(cfg.Observability.MetricsAddress, obs, app.ready)
	}

	return app, nil
}

// ready reports whether the service can take traffic.
func (a *App) ready() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		return false
	}
	return a.QuestModule.Queue.HealthCheck(ctx) == nil
}

// Run starts the routers, modules and ops server and blocks until ctx is
// canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger
	logger.InfoContext(ctx, "Starting quest board service")

	var wg sync.WaitGroup

	for _, r := range a.routers {
		router := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := router.Run(ctx); err != nil {
				logger.ErrorContext(ctx, "Router stopped with error", "error", err)
			}
		}()
	}

	wg.Add(3)
	go a.GuildModule.Run(ctx, &wg)
	go a.QuestModule.Run(ctx, &wg)
	go a.StatsModule.Run(ctx, &wg)

	if a.opsServer != nil {
		go a.opsServer.Start()
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining")
	wg.Wait()
	return nil
}

// Close releases all resources in reverse dependency order.
func (a *App) Close() error {
	logger := a.Observability.Logger

	if a.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error stopping ops server", "error", err)
		}
		cancel()
	}

	if err := a.StatsModule.Close(); err != nil {
		logger.Error("Error closing stats module", "error", err)
	}
	if err := a.QuestModule.Close(); err != nil {
		logger.Error("Error closing quest module", "error", err)
	}
	if err := a.GuildModule.Close(); err != nil {
		logger.Error("Error closing guild module", "error", err)
	}

	for _, r := range a.routers {
		if err := r.Close(); err != nil {
			logger.Error("Error closing router", "error", err)
		}
	}

	if err := a.Bus.Close(); err != nil {
		logger.Error("Error closing event bus", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("Error closing database", "error", err)
	}

	logger.Info("Quest board service stopped")
	return nil
}

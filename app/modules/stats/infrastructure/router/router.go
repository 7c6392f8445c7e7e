// Package statsrouter wires stats event handlers onto the message router.
package statsrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	statsservice "github.com/aetherius-rpg/questboard/app/modules/stats/application"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	statshandlers "github.com/aetherius-rpg/questboard/app/modules/stats/infrastructure/handlers"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// StatsRouter handles routing for stats module events.
type StatsRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	throttle   *ratelimit.GuildThrottle
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// NewStatsRouter creates a new StatsRouter.
func NewStatsRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	throttle *ratelimit.GuildThrottle,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *StatsRouter {
	return &StatsRouter{
		logger:     logger,
		Router:     router,
		subscriber: bus,
		publisher:  bus,
		throttle:   throttle,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// Configure sets up middleware and registers the stats handlers.
func (r *StatsRouter) Configure(ctx context.Context, service statsservice.Service) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.throttle.Middleware(r.logger),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, statshandlers.NewStatsHandlers(service)); err != nil {
		return fmt.Errorf("failed to register stats handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *observability.Metrics
}

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "stats." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the transformation pattern.
func (r *StatsRouter) RegisterHandlers(ctx context.Context, handlers statshandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, statsevents.OverviewRequested, handlers.HandleOverviewRequested)
	registerHandler(deps, statsevents.ExportRequested, handlers.HandleExportRequested)
	registerHandler(deps, statsevents.ClearRequested, handlers.HandleClearRequested)

	return nil
}

// Close stops the underlying router.
func (r *StatsRouter) Close() error {
	return r.Router.Close()
}

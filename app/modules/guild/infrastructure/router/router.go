// Package guildrouter wires guild event handlers onto the message router.
package guildrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	guildservice "github.com/aetherius-rpg/questboard/app/modules/guild/application"
	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	guildhandlers "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/handlers"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// GuildRouter handles routing for guild module events.
type GuildRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	throttle   *ratelimit.GuildThrottle
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// NewGuildRouter creates a new GuildRouter.
func NewGuildRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	throttle *ratelimit.GuildThrottle,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *GuildRouter {
	return &GuildRouter{
		logger:     logger,
		Router:     router,
		subscriber: bus,
		publisher:  bus,
		throttle:   throttle,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// Configure sets up middleware and registers the guild handlers.
func (r *GuildRouter) Configure(ctx context.Context, service guildservice.Service) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.throttle.Middleware(r.logger),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, guildhandlers.NewGuildHandlers(service)); err != nil {
		return fmt.Errorf("failed to register guild handlers: %w", err)
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
	handlerName := "guild." + topic

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
func (r *GuildRouter) RegisterHandlers(ctx context.Context, handlers guildhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, guildevents.SetupRequested, handlers.HandleSetupRequested)
	registerHandler(deps, guildevents.ConfigRequested, handlers.HandleConfigRequested)
	registerHandler(deps, guildevents.ResetRequested, handlers.HandleResetRequested)

	return nil
}

// Close stops the underlying router.
func (r *GuildRouter) Close() error {
	return r.Router.Close()
}

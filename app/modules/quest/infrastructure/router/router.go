// Package questrouter wires quest event handlers onto the message router.
package questrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/aetherius-rpg/questboard/app/eventbus"
	questservice "github.com/aetherius-rpg/questboard/app/modules/quest/application"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questhandlers "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/handlers"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// QuestRouter handles routing for quest module events.
type QuestRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	throttle   *ratelimit.GuildThrottle
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// NewQuestRouter creates a new QuestRouter.
func NewQuestRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	throttle *ratelimit.GuildThrottle,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *QuestRouter {
	return &QuestRouter{
		logger:     logger,
		Router:     router,
		subscriber: bus,
		publisher:  bus,
		throttle:   throttle,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// Configure sets up middleware and registers the quest handlers.
func (r *QuestRouter) Configure(ctx context.Context, service questservice.Service) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.throttle.Middleware(r.logger),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, questhandlers.NewQuestHandlers(service)); err != nil {
		return fmt.Errorf("failed to register quest handlers: %w", err)
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

// registerHandler registers a pure transformation-pattern handler with typed
// payload. The publish topic is left empty; the bus routes each produced
// message on its metadata topic.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "quest." + topic

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
func (r *QuestRouter) RegisterHandlers(ctx context.Context, handlers questhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, questevents.ThreadCreated, handlers.HandleThreadCreated)
	registerHandler(deps, questevents.RecruitRequested, handlers.HandleRecruitRequested)
	registerHandler(deps, questevents.RegisterRequested, handlers.HandleRegisterRequested)
	registerHandler(deps, questevents.JoinRequested, handlers.HandleJoinRequested)
	registerHandler(deps, questevents.DecisionRequested, handlers.HandleDecisionRequested)
	registerHandler(deps, questevents.LeaveRequested, handlers.HandleLeaveRequested)
	registerHandler(deps, questevents.KickRequested, handlers.HandleKickRequested)
	registerHandler(deps, questevents.StatusSetRequested, handlers.HandleStatusSetRequested)
	registerHandler(deps, questevents.UpdateRequested, handlers.HandleUpdateRequested)
	registerHandler(deps, questevents.DeleteRequested, handlers.HandleDeleteRequested)
	registerHandler(deps, questevents.InfoRequested, handlers.HandleInfoRequested)
	registerHandler(deps, questevents.ListRequested, handlers.HandleListRequested)
	registerHandler(deps, questevents.EmbedPosted, handlers.HandleEmbedPosted)

	return nil
}

// Close stops the underlying router.
func (r *QuestRouter) Close() error {
	return r.Router.Close()
}

// Package handlerwrapper standardizes the transforming-handler pattern used
// by every module router: a handler receives a typed payload and returns the
// events it wants published. The wrapper supplies decoding, tracing, metrics,
// panic recovery and logging so handlers stay pure.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aetherius-rpg/questboard/internal/eventutil"
)

// Result is a single outbound event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// Metrics records per-handler outcomes. A nil Metrics disables recording.
type Metrics interface {
	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

// WrapTransformingTyped adapts a typed transforming handler into a watermill
// HandlerFunc. Each returned Result is marshalled into a message carrying its
// destination topic in metadata; the event bus publisher routes on it.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics Metrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) (out []*message.Message, err error) {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		correlationID := middleware.MessageCorrelationID(msg)
		start := time.Now()
		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
			defer func() {
				metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
			}()
		}

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in handler %s: %v", handlerName, r)
				logger.ErrorContext(ctx, "Panic recovered in handler",
					slog.String("handler", handlerName),
					slog.String("correlation_id", correlationID),
					slog.Any("error", err),
				)
				span.RecordError(err)
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				out = nil
			}
		}()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			// A payload that cannot decode will never decode; drop it.
			logger.ErrorContext(ctx, "Dropping undecodable message",
				slog.String("handler", handlerName),
				slog.String("correlation_id", correlationID),
				slog.Any("error", err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, nil
		}

		handlerResults, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				slog.String("handler", handlerName),
				slog.String("correlation_id", correlationID),
				slog.Any("error", err),
			)
			span.RecordError(err)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, err
		}

		messages := make([]*message.Message, 0, len(handlerResults))
		for _, hr := range handlerResults {
			outMsg, err := eventutil.NewMessage(msg, hr.Topic, hr.Payload)
			if err != nil {
				span.RecordError(err)
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				return nil, err
			}
			for k, v := range hr.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			messages = append(messages, outMsg)
		}

		logger.DebugContext(ctx, "Handler completed",
			slog.String("handler", handlerName),
			slog.String("correlation_id", correlationID),
			slog.Int("results", len(messages)),
		)
		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		return messages, nil
	}
}

// NewUUID is re-exported so callers don't need to import watermill directly.
func NewUUID() string { return watermill.NewUUID() }

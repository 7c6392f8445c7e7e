// Package eventutil holds small helpers for working with watermill messages.
package eventutil

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey carries the destination topic on messages produced by
// transforming handlers; the event bus reads it when the publish topic is
// left empty.
const TopicMetadataKey = "topic"

// UnmarshalPayload decodes a message payload into T and returns the message's
// correlation ID alongside it.
func UnmarshalPayload[T any](msg *message.Message, logger *slog.Logger) (string, *T, error) {
	correlationID := middleware.MessageCorrelationID(msg)

	payload := new(T)
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		logger.Error("Failed to unmarshal message payload",
			slog.String("correlation_id", correlationID),
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
		return correlationID, nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return correlationID, payload, nil
}

// NewMessage marshals payload into a fresh message destined for topic,
// propagating the correlation ID from parent when present.
func NewMessage(parent *message.Message, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(TopicMetadataKey, topic)

	correlationID := watermill.NewUUID()
	if parent != nil {
		if cid := middleware.MessageCorrelationID(parent); cid != "" {
			correlationID = cid
		}
		if gid := parent.Metadata.Get("guild_id"); gid != "" {
			msg.Metadata.Set("guild_id", gid)
		}
	}
	middleware.SetCorrelationID(correlationID, msg)

	return msg, nil
}

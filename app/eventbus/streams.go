package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
)

// streamNames are the JetStream streams the board uses. Each stream owns the
// subject hierarchy under its name; discord.* carries both gateway events in
// and render commands out.
var streamNames = []string{"quest", "guild", "stats", "discord"}

// initializeStreams provisions the streams at startup. Existing streams are
// left untouched.
func initializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	for _, name := range streamNames {
		_, err := js.Stream(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, jetstream.ErrStreamNotFound) {
			return fmt.Errorf("failed to check stream %s: %w", name, err)
		}

		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     name,
			Subjects: []string{fmt.Sprintf("%s.>", name)},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		logger.Info("Created JetStream stream", slog.String("stream", name))
	}
	return nil
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/service/integration"
)

// publish sends an event for an already committed write. Failures are logged only.
func publish(ctx context.Context, publisher integration.EventPublisher, logger zerolog.Logger, event models.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", event.Type.String()).
			Msg("Failed to publish event")
	}
}

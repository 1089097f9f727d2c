package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/pkg/rabbitmq"
)

// EventPublisher delivers domain events after the write they describe has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
	Close() error
}

// NewEvent builds an envelope with a fresh id.
func NewEvent(eventType models.EventType, occurredAt time.Time, payload interface{}) models.Event {
	return models.Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}
}

type RabbitMQConfig struct {
	URL        string
	Exchange   string
	QueueName  string
	BindingKey string
}

type rabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
	logger   zerolog.Logger
}

func NewRabbitMQPublisher(cfg RabbitMQConfig, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := rabbitmq.NewConnection(cfg.URL)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	topology := rabbitmq.Topology{
		Exchange:   cfg.Exchange,
		Queue:      cfg.QueueName,
		BindingKey: cfg.BindingKey,
	}
	if err := rabbitmq.Declare(channel, topology); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.QueueName).
		Str("binding_key", cfg.BindingKey).
		Msg("Connected to RabbitMQ")

	return &rabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishes
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		publishCtx,
		p.exchange,          // exchange
		event.Type.String(), // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Type.String(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.Type.String()).
		Msg("Event published")

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}

type nopPublisher struct {
	logger zerolog.Logger
}

// NewNopPublisher drops every event. Used when the broker is disabled.
func NewNopPublisher(logger zerolog.Logger) EventPublisher {
	return &nopPublisher{logger: logger}
}

func (p *nopPublisher) Publish(_ context.Context, event models.Event) error {
	p.logger.Debug().
		Str("event_type", event.Type.String()).
		Msg("Event dropped, publisher disabled")
	return nil
}

func (p *nopPublisher) Close() error { return nil }

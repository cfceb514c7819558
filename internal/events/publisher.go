// Package events publishes item lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/webstack/services/backend/internal/db"
)

const (
	exchangeName = "backend.events"
	exchangeType = "topic"

	// Event types double as routing keys.
	EventTypeItemCreated = "item.created"
	EventTypeItemUpdated = "item.updated"
	EventTypeItemDeleted = "item.deleted"

	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
	confirmTimeout = 5 * time.Second
)

// Publisher handles event publishing to RabbitMQ. The service treats it as
// an optional collaborator: when the broker is unreachable at startup the
// API runs without events.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

// Event is the wire shape of a published domain event.
type Event struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp string                 `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

// NewPublisher connects to RabbitMQ and declares the topic exchange.
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	log.Info("Connected to RabbitMQ", zap.String("exchange", exchangeName))

	return &Publisher{
		conn:    conn,
		channel: channel,
		log:     log,
	}, nil
}

// PublishItemCreated publishes an item.created event.
func (p *Publisher) PublishItemCreated(ctx context.Context, item *db.Item) error {
	return p.publishWithRetry(ctx, newEvent(EventTypeItemCreated, map[string]interface{}{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
	}))
}

// PublishItemUpdated publishes an item.updated event carrying the changed
// fields and the resulting row.
func (p *Publisher) PublishItemUpdated(ctx context.Context, item *db.Item, fieldsChanged []string) error {
	return p.publishWithRetry(ctx, newEvent(EventTypeItemUpdated, map[string]interface{}{
		"id":             item.ID,
		"fields_changed": fieldsChanged,
		"name":           item.Name,
		"description":    item.Description,
	}))
}

// PublishItemDeleted publishes an item.deleted event.
func (p *Publisher) PublishItemDeleted(ctx context.Context, id int64) error {
	return p.publishWithRetry(ctx, newEvent(EventTypeItemDeleted, map[string]interface{}{
		"id": id,
	}))
}

func newEvent(eventType string, payload map[string]interface{}) Event {
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	}
}

// publishWithRetry publishes an event with exponential backoff and waits
// for broker confirmation.
func (p *Publisher) publishWithRetry(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	backoff := initialBackoff
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
		}

		confirms := p.channel.NotifyPublish(make(chan amqp.Confirmation, 1))

		err := p.channel.PublishWithContext(
			ctx,
			exchangeName,
			event.EventType,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				MessageId:    event.EventID,
				Body:         body,
			},
		)
		if err != nil {
			lastErr = err
			p.log.Warn("Failed to publish event, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		select {
		case confirm := <-confirms:
			if confirm.Ack {
				p.log.Info("Event published",
					zap.String("event_id", event.EventID),
					zap.String("event_type", event.EventType),
				)
				return nil
			}
			lastErr = fmt.Errorf("event not acknowledged")
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(confirmTimeout):
			lastErr = fmt.Errorf("confirmation timeout")
		}

		p.log.Warn("Event publish not confirmed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	p.log.Error("Failed to publish event after retries",
		zap.String("event_type", event.EventType),
		zap.Int("attempts", maxRetries),
		zap.Error(lastErr),
	)
	return fmt.Errorf("failed to publish event after %d attempts: %w", maxRetries, lastErr)
}

// IsHealthy reports whether the broker connection is open.
func (p *Publisher) IsHealthy() bool {
	return p.conn != nil && !p.conn.IsClosed()
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Error("Failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.log.Error("Failed to close connection", zap.Error(err))
			return err
		}
	}
	return nil
}

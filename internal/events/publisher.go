package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bistro/internal/models"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const ordersExchange = "orders_topic"

// Publisher emits order lifecycle events. Publishing is best-effort
// throughout: callers log failures and move on.
type Publisher interface {
	OrderPlaced(ctx context.Context, order *models.Order, lineCount int) error
	OrderStatusChanged(ctx context.Context, orderID uuid.UUID, status int) error
	OrderAssigned(ctx context.Context, orderID, crewID uuid.UUID) error
	Close() error
}

// OrderEvent is the wire payload for every order event.
type OrderEvent struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id,omitempty"`
	CrewID     string    `json:"crew_id,omitempty"`
	Status     int       `json:"status"`
	Total      float64   `json:"total,omitempty"`
	LineCount  int       `json:"line_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type amqpPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQPPublisher connects to RabbitMQ and declares the orders exchange.
func NewAMQPPublisher(url string) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: channel}, nil
}

func (p *amqpPublisher) OrderPlaced(ctx context.Context, order *models.Order, lineCount int) error {
	return p.publish(ctx, "order.placed", OrderEvent{
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Status:     order.Status,
		Total:      order.Total,
		LineCount:  lineCount,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *amqpPublisher) OrderStatusChanged(ctx context.Context, orderID uuid.UUID, status int) error {
	return p.publish(ctx, "order.status_changed", OrderEvent{
		OrderID:    orderID.String(),
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *amqpPublisher) OrderAssigned(ctx context.Context, orderID, crewID uuid.UUID) error {
	return p.publish(ctx, "order.assigned", OrderEvent{
		OrderID:    orderID.String(),
		CrewID:     crewID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *amqpPublisher) publish(ctx context.Context, routingKey string, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		ordersExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// NoopPublisher satisfies Publisher when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderPlaced(context.Context, *models.Order, int) error { return nil }

func (NoopPublisher) OrderStatusChanged(context.Context, uuid.UUID, int) error { return nil }

func (NoopPublisher) OrderAssigned(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (NoopPublisher) Close() error { return nil }

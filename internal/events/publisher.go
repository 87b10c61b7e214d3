package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

type OrderPlaced struct {
	EventID     string          `json:"event_id"`
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      int64           `json:"user_id"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type OrderStatusChanged struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher fans checkout events out to downstream consumers (fulfillment,
// notifications). Publishing is best-effort; checkout never fails on it.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
	PublishStatusChanged(ctx context.Context, ev OrderStatusChanged) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error          { return nil }
func (NopPublisher) PublishStatusChanged(context.Context, OrderStatusChanged) error { return nil }
func (NopPublisher) Close() error                                                   { return nil }

type AMQPPublisher struct {
	conn  *amqp.Connection
	queue string
}

// Dial connects and declares the durable event queue up front, so a
// misconfigured broker fails at startup instead of at the first checkout.
func Dial(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, queue: queue}, nil
}

func (p *AMQPPublisher) publish(ctx context.Context, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return ch.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{ContentType: "application/json", Body: body})
}

func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	return p.publish(ctx, ev)
}

func (p *AMQPPublisher) PublishStatusChanged(ctx context.Context, ev OrderStatusChanged) error {
	return p.publish(ctx, ev)
}

func (p *AMQPPublisher) Close() error { return p.conn.Close() }

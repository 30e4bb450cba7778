package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/streadway/amqp"

	"github.com/unclebandit/recommend-gateway/internal/model"
)

// Publisher sends recommendation events somewhere durable.
type Publisher interface {
	Publish(ctx context.Context, event model.RecommendationEvent) error
	Close() error
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a durable RabbitMQ queue. When the broker
// has closed the channel or connection, the next Publish re-dials once.
type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string

	redial func() (*amqp.Connection, channel, error)
}

// NewAMQPPublisher dials url and declares queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, ch, name, err := dial(url, queue)
	if err != nil {
		return nil, err
	}
	p := &AMQPPublisher{conn: conn, ch: ch, queue: name}
	p.redial = func() (*amqp.Connection, channel, error) {
		conn, ch, _, err := dial(url, queue)
		return conn, ch, err
	}
	return p, nil
}

// dial connects, opens a channel and declares a durable queue.
func dial(url, queue string) (*amqp.Connection, *amqp.Channel, string, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, "", fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, "", fmt.Errorf("failed to declare queue: %w", err)
	}
	return conn, ch, q.Name, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event model.RecommendationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RequestID,
		Timestamp:    event.OccurredAt,
		Type:         "recommend." + string(event.Outcome),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish("", p.queue, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) && p.redial != nil {
		if rerr := p.reconnect(); rerr != nil {
			return fmt.Errorf("publish to %s: %w (reconnect: %v)", p.queue, err, rerr)
		}
		err = p.ch.Publish("", p.queue, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

// reconnect replaces the channel and connection. Callers hold p.mu.
func (p *AMQPPublisher) reconnect() error {
	conn, ch, err := p.redial()
	if err != nil {
		return err
	}
	p.ch.Close()
	if p.conn != nil {
		p.conn.Close()
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	chErr := p.ch.Close()
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	return chErr
}

// NopPublisher drops every event. Used when AMQP_URL is not set.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.RecommendationEvent) error { return nil }
func (NopPublisher) Close() error                                            { return nil }

var (
	_ Publisher = (*AMQPPublisher)(nil)
	_ Publisher = NopPublisher{}
)

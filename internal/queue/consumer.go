package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/unclebandit/recommend-gateway/internal/model"
)

// EventHandler processes one decoded recommendation event.
type EventHandler func(ctx context.Context, event model.RecommendationEvent) error

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("amqp delivery channel closed")

// Consumer reads recommendation events from a durable queue.
type Consumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	Handler EventHandler
	Logger  zerolog.Logger
}

// NewConsumer dials url and declares queue, the same queue the publisher writes to.
func NewConsumer(url, queue string, handler EventHandler, logger zerolog.Logger) (*Consumer, error) {
	conn, ch, name, err := dial(url, queue)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, queue: name, Handler: handler, Logger: logger}, nil
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.Consume(
		c.queue,
		"",
		false, // autoAck
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}
	return c.consume(ctx, msgs)
}

func (c *Consumer) consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

// handle acks undecodable bodies so they are not redelivered forever, and
// requeues a failed event once.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var event model.RecommendationEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.Logger.Warn().Err(err).Str("message_id", d.MessageId).Msg("Invalid event")
		d.Ack(false)
		return
	}

	if err := c.Handler(ctx, event); err != nil {
		requeue := !d.Redelivered
		c.Logger.Error().Err(err).
			Str("message_id", d.MessageId).
			Bool("requeue", requeue).
			Msg("Failed to handle event")
		d.Nack(false, requeue)
		return
	}
	d.Ack(false)
}

func (c *Consumer) Close() error {
	chErr := c.ch.Close()
	if err := c.conn.Close(); err != nil {
		return err
	}
	return chErr
}

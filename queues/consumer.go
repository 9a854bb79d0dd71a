package queues

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/theoremus-urban-solutions/tramline/tracking"
)

const (
	// When reconnecting to the server after connection failure
	reconnectDelay = 5 * time.Second

	// DefaultExchange is the fanout exchange snapshots are published to.
	DefaultExchange = "vehicles"
)

var errDeliveriesClosed = errors.New("delivery channel closed")

// Handler processes one decoded tick.
type Handler func(ctx context.Context, tick tracking.Tick) error

// Consumer reads snapshot messages from a queue bound to the vehicles
// exchange.
type Consumer struct {
	addr     string
	exchange string
	queue    string
	tag      string
}

// NewConsumer creates a consumer for queue on the server at addr. An empty
// queue name lets the server pick an exclusive one.
func NewConsumer(addr, queue string) *Consumer {
	return &Consumer{
		addr:     addr,
		exchange: DefaultExchange,
		queue:    queue,
		tag:      "tramline-" + uuid.NewString(),
	}
}

// Tag returns the consumer tag announced to the server.
func (c *Consumer) Tag() string { return c.tag }

// Run consumes until ctx is cancelled, reconnecting after failures.
// Messages that fail to decode are dropped and logged; handler errors are
// logged and the message is still acknowledged, since the next tick
// supersedes it.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		err := c.consume(ctx, handle)
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("AMQP consumer %s stopped: %v; reconnecting in %s", c.tag, err, reconnectDelay)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Consumer) consume(ctx context.Context, handle Handler) error {
	conn, err := amqp.Dial(c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	queue, err := c.declare(ch)
	if err != nil {
		return err
	}

	deliveries, err := ch.Consume(
		queue, // queue
		c.tag, // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", queue, err)
	}
	log.Printf("AMQP consumer %s subscribed to %s", c.tag, queue)

	notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-notifyClose:
			return fmt.Errorf("connection closed: %v", amqpErr)
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			c.deliver(ctx, d, handle)
		}
	}
}

func (c *Consumer) declare(ch *amqp.Channel) (string, error) {
	err := ch.ExchangeDeclare(
		c.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return "", fmt.Errorf("failed to declare exchange %s: %w", c.exchange, err)
	}

	q, err := ch.QueueDeclare(
		c.queue,       // name
		false,         // durable
		c.queue == "", // delete when unused
		c.queue == "", // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return "", fmt.Errorf("failed to declare queue %q: %w", c.queue, err)
	}

	if err := ch.QueueBind(q.Name, "", c.exchange, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
	}
	return q.Name, nil
}

func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery, handle Handler) {
	tick, err := DecodeTick(d.Body)
	if err != nil {
		log.Printf("Dropping AMQP message %s: %v", d.MessageId, err)
		_ = d.Nack(false, false)
		return
	}
	if err := handle(ctx, tick); err != nil {
		log.Printf("Snapshot from AMQP message %s not applied: %v", d.MessageId, err)
	}
	_ = d.Ack(false)
}

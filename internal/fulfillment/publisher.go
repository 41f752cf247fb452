package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumibelle/beauty-shop-backend/internal/order"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher forwards committed orders to the fulfillment queue. Delivery is
// best-effort; the order is durable in the store before anything reaches
// the queue.
type Publisher struct {
	channel   *amqp.Channel
	queueName string
}

func NewPublisher(conn *amqp.Connection, queueName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return &Publisher{channel: ch, queueName: queueName}, nil
}

func (p *Publisher) OrderCreated(ord order.Order) error {
	body, err := json.Marshal(ord)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
}

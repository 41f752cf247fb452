package fulfillment

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/lumibelle/beauty-shop-backend/internal/order"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Event is a delivery-progress update emitted by the external fulfillment
// process. Status and progress arrive as-is; nothing validates that they
// agree with each other.
type Event struct {
	OrderID        string  `json:"orderId"`
	Status         string  `json:"status"`
	Progress       int     `json:"progress"`
	TrackingNumber string  `json:"trackingNumber,omitempty"`
	DeliveryDate   *string `json:"deliveryDate,omitempty"`
}

// Consumer applies fulfillment events to orders. It models the out-of-band
// writer that owns the delivery lifecycle after checkout.
type Consumer struct {
	channel   *amqp.Channel
	queueName string
	orders    *order.Service
}

func NewConsumer(conn *amqp.Connection, queueName string, orders *order.Service) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consume channel: %w", err)
	}

	// one event at a time per consumer
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
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

	return &Consumer{channel: ch, queueName: queueName, orders: orders}, nil
}

// Start consumes events until the channel closes.
func (c *Consumer) Start() error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"fulfillment-consumer", // consumer tag
		false,                  // auto-ack (we want manual acknowledgements)
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		log.Printf("fulfillment consumer waiting on %s", c.queueName)
		for msg := range msgs {
			c.processMessage(msg)
		}
		log.Printf("fulfillment consumer stopped")
	}()
	return nil
}

func (c *Consumer) processMessage(msg amqp.Delivery) {
	var ev Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Printf("fulfillment: malformed event: %v", err)
		// malformed, do not requeue
		msg.Nack(false, false)
		return
	}

	if _, err := c.orders.ApplyFulfillment(ev.OrderID, ev.Status, ev.Progress, ev.TrackingNumber, ev.DeliveryDate); err != nil {
		log.Printf("fulfillment: event for order %s not applied: %v", ev.OrderID, err)
		msg.Nack(false, false)
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("fulfillment: failed to acknowledge event for order %s: %v", ev.OrderID, err)
	}
}

func (c *Consumer) Stop() {
	if c.channel != nil {
		c.channel.Close()
	}
}

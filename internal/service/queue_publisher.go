package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ceylonscape/tour-backoffice/internal/queue"
)

// Publisher pushes audit events to RabbitMQ. It dials per publish so a
// broker restart between requests needs no connection management here;
// errors are logged and returned so callers can ignore failures without
// interrupting the request flow.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// BookingStatusChanged publishes to the booking.status_changed queue.
func (p *Publisher) BookingStatusChanged(ctx context.Context, ev queue.BookingStatusChangedEvent) error {
	return p.publishJSON(ctx, queue.BookingStatusChangedQueue, ev)
}

// NotificationDispatched publishes to the notification.dispatched queue.
func (p *Publisher) NotificationDispatched(ctx context.Context, ev queue.NotificationDispatchedEvent) error {
	return p.publishJSON(ctx, queue.NotificationDispatchedQueue, ev)
}

func (p *Publisher) publishJSON(ctx context.Context, queueName string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("publisher: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("publisher: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable declare is idempotent; messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("publisher: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("publisher: marshal event failed: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		log.Printf("publisher: publish to %s failed: %v", queueName, err)
	}
	return err
}

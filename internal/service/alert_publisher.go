package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/billetweb-booking/internal/model"
	"github.com/iliyamo/billetweb-booking/internal/queue"
)

// AlertPublisher delivers availability alerts to downstream consumers.
type AlertPublisher interface {
	PublishAvailabilityAlert(ctx context.Context, ev queue.AvailabilityAlertEvent) error
}

// AMQPAlertPublisher publishes alerts to RabbitMQ.  Each call opens its own
// connection, so the publisher holds no state between invocations.
type AMQPAlertPublisher struct {
	URL string
}

// PublishAvailabilityAlert publishes ev to the durable availability.alerts
// queue as a persistent JSON message.
func (p *AMQPAlertPublisher) PublishAvailabilityAlert(ctx context.Context, ev queue.AvailabilityAlertEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.AlertQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",                   // default exchange
		queue.AlertQueueName, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// alertFor builds the event for snap, or returns false when snap has no
// low-stock or sold-out session.
func alertFor(invocationID, eventID string, snap model.Snapshot, now time.Time) (queue.AvailabilityAlertEvent, bool) {
	if len(snap.Notices) == 0 {
		return queue.AvailabilityAlertEvent{}, false
	}
	ev := queue.AvailabilityAlertEvent{
		InvocationID: invocationID,
		EventID:      eventID,
		Notices:      snap.Notices,
		GeneratedAt:  now.UTC().Format(time.RFC3339),
	}
	for _, s := range snap.Sessions {
		a := queue.SessionAlert{SessionID: s.ID, Start: s.Start, Remaining: s.Remaining}
		switch {
		case s.SoldOut():
			ev.SoldOut = append(ev.SoldOut, a)
		case s.Status() == model.StatusLowStock:
			ev.LowStock = append(ev.LowStock, a)
		}
	}
	return ev, true
}

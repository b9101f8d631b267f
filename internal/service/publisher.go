// Package service provides publishers for domain events.  Publishing is
// best effort: callers log failures and carry on.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/fyyur/internal/metrics"
    q "github.com/iliyamo/fyyur/internal/queue"
)

// Publisher sends show.booked events.
type Publisher interface {
    PublishShowBooked(ctx context.Context, event q.ShowBookedEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

// PublishShowBooked implements Publisher.
func (NopPublisher) PublishShowBooked(context.Context, q.ShowBookedEvent) error { return nil }

// AMQPPublisher publishes to RabbitMQ, dialing once per event.  Bookings
// are rare enough that a pooled connection is not worth its reconnect
// handling.
type AMQPPublisher struct {
    URL     string
    Timeout time.Duration
}

// NewAMQPPublisher returns a publisher for url with a 3s publish timeout.
func NewAMQPPublisher(url string) *AMQPPublisher {
    return &AMQPPublisher{URL: url, Timeout: 3 * time.Second}
}

// PublishShowBooked publishes event to the durable show.booked queue as a
// persistent message.
func (p *AMQPPublisher) PublishShowBooked(ctx context.Context, event q.ShowBookedEvent) (err error) {
    defer func() {
        outcome := "ok"
        if err != nil {
            outcome = "failed"
        }
        metrics.EventsPublished.WithLabelValues(q.ShowBookedQueue, outcome).Inc()
    }()

    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.Timeout)})
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.ShowBookedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    ctx, cancel := context.WithTimeout(ctx, p.Timeout)
    defer cancel()
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.ShowBookedQueue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    return nil
}

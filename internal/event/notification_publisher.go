package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// NotificationPublisher publishes notification events to RabbitMQ.
// It is safe for concurrent use.
type NotificationPublisher struct {
	ch                Channel
	mu                sync.Mutex
	declared          bool
	messagesPublished atomic.Int64
	messagesFailed    atomic.Int64
	lastPublishTime   atomic.Int64
}

func NewNotificationPublisher(conn *RabbitMQConnection) *NotificationPublisher {
	return NewNotificationPublisherWithChannel(conn.Channel)
}

func NewNotificationPublisherWithChannel(ch Channel) *NotificationPublisher {
	return &NotificationPublisher{ch: ch}
}

// PublishNotification publishes a notification event to the push_noti_events queue
func (p *NotificationPublisher) PublishNotification(ctx context.Context, event NotificationEventPushModel) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.ch.QueueDeclare(
			PushNotiQueue, // queue name
			true,          // durable
			false,         // delete when unused
			false,         // exclusive
			false,         // no-wait
			nil,           // arguments
		)
		if err != nil {
			p.messagesFailed.Add(1)
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.declared = true
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",            // exchange
		PushNotiQueue, // routing key (queue name)
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	p.messagesPublished.Add(1)
	p.lastPublishTime.Store(time.Now().UnixNano())

	slog.Info("Notification event published",
		"queue", PushNotiQueue,
		"title", event.Title,
		"user_count", len(event.LstUserIds),
	)
	return nil
}

// GetMetrics returns publisher metrics
func (p *NotificationPublisher) GetMetrics() map[string]any {
	var last time.Time
	if ns := p.lastPublishTime.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}
	return map[string]any{
		"messages_published": p.messagesPublished.Load(),
		"messages_failed":    p.messagesFailed.Load(),
		"last_publish_time":  last,
		"queue":              PushNotiQueue,
	}
}

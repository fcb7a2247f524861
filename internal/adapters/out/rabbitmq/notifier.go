// Package rabbitmq publishes in-app notifications to the message broker.
// Consumers (the driver app, the dispatch console) bind their own queues to
// the topic exchange; the service only publishes.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/notification"

	"github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "meddrop.notifications"

	routingKeyAdmins      = "admins"
	routingKeyDriverScope = "driver.%s"
)

// message is the wire form of an in-app notification.
type message struct {
	NotificationID string    `json:"notification_id"`
	LoadID         string    `json:"load_id"`
	Subject        string    `json:"subject,omitempty"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// InAppNotifier implements ports.InAppNotifier on a RabbitMQ topic exchange.
type InAppNotifier struct {
	channel *amqp091.Channel
}

// NewInAppNotifier declares the notifications exchange and returns a notifier
// publishing to it.
func NewInAppNotifier(conn *amqp091.Connection) (*InAppNotifier, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}

	return &InAppNotifier{channel: channel}, nil
}

// NotifyDriver delivers a message to one driver's in-app feed.
func (n *InAppNotifier) NotifyDriver(
	ctx context.Context,
	driverID kernel.UUID,
	record *notification.Notification,
) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	return n.publish(ctx, fmt.Sprintf(routingKeyDriverScope, driverID.String()), record)
}

// BroadcastAdmins delivers a message to every dispatch admin.
func (n *InAppNotifier) BroadcastAdmins(
	ctx context.Context,
	record *notification.Notification,
) error {
	return n.publish(ctx, routingKeyAdmins, record)
}

// Close releases the AMQP channel.
func (n *InAppNotifier) Close() error {
	return n.channel.Close()
}

func (n *InAppNotifier) publish(
	ctx context.Context,
	routingKey string,
	record *notification.Notification,
) error {
	if err := record.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(message{
		NotificationID: record.ID().String(),
		LoadID:         record.LoadID().String(),
		Subject:        record.Subject(),
		Body:           record.Body(),
		CreatedAt:      record.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    record.ID().String(),
			Timestamp:    record.CreatedAt(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s with key %s: %w", exchangeName, routingKey, err)
	}

	return nil
}

package queue

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueSoundCommands carries play/stop commands for the dashboard sound relay
const QueueSoundCommands = "sound_commands"

// Config represents configuration for the RabbitMQ connection
type Config struct {
	URL string
}

// Broker publishes messages to RabbitMQ queues
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

// NewBroker connects to RabbitMQ and declares the queues the service uses
func NewBroker(cfg Config) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	broker := &Broker{conn: conn, channel: channel}

	for _, queueName := range []string{QueueSoundCommands} {
		if err := broker.declareQueue(queueName); err != nil {
			channel.Close()
			conn.Close()
			return nil, err
		}
	}

	return broker, nil
}

func (b *Broker) declareQueue(name string) error {
	_, err := b.channel.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Publish sends a JSON payload to the named queue with persistent delivery
func (b *Broker) Publish(ctx context.Context, queueName string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.channel.PublishWithContext(
		ctx,
		"", // default exchange
		queueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}
	return nil
}

// Close shuts down the channel and connection
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

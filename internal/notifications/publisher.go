package notifications

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/services"
)

const receiptExchange = "receipts_fanout"

// Publisher delivers receipt notifications over RabbitMQ. A downstream
// consumer turns them into customer emails; the API never waits on delivery.
type Publisher struct {
	conn *amqp.Connection
}

// Connect dials the broker and declares the receipt exchange.
func Connect(cfg config.AMQPConfig) (*Publisher, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(receiptExchange, "fanout", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn}, nil
}

// PublishReceipt sends one receipt message. A fresh channel per publish keeps
// the publisher safe for concurrent use.
func (p *Publisher) PublishReceipt(receipt services.Receipt) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}

	err = ch.Publish(receiptExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish receipt: %w", err)
	}
	return nil
}

// Close shuts the broker connection down.
func (p *Publisher) Close() error {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}

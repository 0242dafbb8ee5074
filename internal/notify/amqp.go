package notify

import (
	"context"
	"fmt"
	"time"

	"ledgerly/internal/logger"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes alerts to a durable direct exchange. The queue is
// bound with its own name as routing key.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	queueName    string
}

// NewAMQPPublisher dials url and declares the exchange and queue.
func NewAMQPPublisher(url, exchangeName, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setup(ch, exchangeName, queueName); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return &AMQPPublisher{
		conn:         conn,
		channel:      ch,
		exchangeName: exchangeName,
		queueName:    queueName,
	}, nil
}

func setup(ch *amqp091.Channel, exchangeName, queueName string) error {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, queueName, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishBudgetAlert publishes alert as a persistent JSON message.
func (p *AMQPPublisher) PublishBudgetAlert(ctx context.Context, alert *BudgetAlert) error {
	body, err := alert.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Type:         "budget.alert",
			Timestamp:    alert.RaisedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Get().Infow("Published budget alert",
		"budget_id", alert.BudgetID,
		"exchange", p.exchangeName,
		"queue", p.queueName,
	)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

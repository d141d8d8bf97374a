package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeName is the topic exchange assignment events go to
const ExchangeName = "crewplan.events"

// Routing keys
const (
	AssignmentCreated = "assignment.created"
	AssignmentUpdated = "assignment.updated"
	AssignmentDeleted = "assignment.deleted"
)

// AssignmentEvent is the body of every assignment.* message
type AssignmentEvent struct {
	Type       string            `json:"type"`
	Assignment models.Assignment `json:"assignment"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewAssignmentEvent stamps an event for a
func NewAssignmentEvent(eventType string, a models.Assignment) AssignmentEvent {
	return AssignmentEvent{Type: eventType, Assignment: a, OccurredAt: time.Now().UTC()}
}

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close()
}

// New returns an AMQP publisher when url is set, otherwise a log-only publisher
func New(url string, logger *zap.Logger) (Publisher, error) {
	if url == "" {
		return NewLogPublisher(logger), nil
	}
	return NewAMQPPublisher(url)
}

// AMQPPublisher publishes JSON events to a RabbitMQ topic exchange
type AMQPPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQPPublisher dials url and declares the events exchange
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// LogPublisher writes events to the log instead of a broker
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.logger.Info("Event published",
		zap.String("routing_key", routingKey),
		zap.ByteString("body", body),
	)
	return nil
}

func (p *LogPublisher) Close() {}

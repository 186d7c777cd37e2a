package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"sals_backend/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	TypeInitialRecorded = "progress.initial_recorded"
	TypePathAssigned    = "progress.path_assigned"
	TypeFinalRecorded   = "progress.final_recorded"
)

// Event is the envelope written to the exchange.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// NoopPublisher drops every event. Used when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }

// AMQPPublisher publishes events to a topic exchange, routed by event type.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	newID    func() string
}

func NewAMQPPublisher(amqpURL, exchange string, newID func() string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange, newID: newID}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(Event{
		ID:         p.newID(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp.Channel is not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Log.Debug("Published event", zap.String("type", eventType))
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Payloads

type InitialRecorded struct {
	TopicID      uint     `json:"topic_id"`
	Topic        string   `json:"topic"`
	AttemptID    uint     `json:"quiz_attempt_id"`
	WeakConcepts []string `json:"weak_concepts"`
}

type PathAssigned struct {
	TopicID        uint     `json:"topic_id"`
	Topic          string   `json:"topic"`
	LearningPathID uint     `json:"learning_path_id"`
	WeakConcepts   []string `json:"weak_concepts"`
}

type FinalRecorded struct {
	TopicID               uint     `json:"topic_id"`
	Topic                 string   `json:"topic"`
	AttemptID             uint     `json:"quiz_attempt_id"`
	ImprovementPercentage *float64 `json:"improvement_percentage"`
	Improved              []string `json:"improved_concepts"`
	StillWeak             []string `json:"still_weak_concepts"`
	NewlyWeak             []string `json:"new_weak_concepts"`
	Degraded              bool     `json:"degraded"`
}

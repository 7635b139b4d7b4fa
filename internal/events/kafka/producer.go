// File: internal/events/kafka/producer.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/domain/models"
)

// CloudEvent defines the envelope for CloudEvents v1.0.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data,omitempty"`
}

const (
	cloudEventSpecVersion     = "1.0"
	cloudEventDataContentType = "application/json"
	cloudEventSource          = "/federation-service"
)

// Producer publishes federation CloudEvents to Kafka.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewProducer creates a synchronous Kafka producer.
func NewProducer(brokers []string, topic string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	if topic == "" {
		topic = FederationEventsTopic
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka_producer"),
	}, nil
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}

// publish wraps the payload in a CloudEvent and sends it. The subject keys
// the message for partitioning.
func (p *Producer) publish(_ context.Context, eventType, subject string, payload interface{}) error {
	event := CloudEvent{
		SpecVersion:     cloudEventSpecVersion,
		Type:            eventType,
		Source:          cloudEventSource,
		Subject:         subject,
		ID:              uuid.NewString(),
		Time:            time.Now().UTC(),
		DataContentType: cloudEventDataContentType,
		Data:            payload,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal CloudEvent: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(eventJSON),
	}
	if subject != "" {
		msg.Key = sarama.StringEncoder(subject)
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send CloudEvent %s: %w", eventType, err)
	}
	p.logger.Debug("Published event",
		zap.String("type", eventType),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// PublishUserFederated emits the event for a freshly provisioned identity.
func (p *Producer) PublishUserFederated(ctx context.Context, event models.UserFederatedEvent) error {
	return p.publish(ctx, EventTypeUserFederated, event.Email, event)
}

// PublishUserRepaired emits the event for a ledger-repaired identity.
func (p *Producer) PublishUserRepaired(ctx context.Context, event models.UserRepairedEvent) error {
	return p.publish(ctx, EventTypeUserRepaired, event.Email, event)
}

// PublishUserLoggedIn emits the event for every successful login.
func (p *Producer) PublishUserLoggedIn(ctx context.Context, event models.UserLoggedInEvent) error {
	return p.publish(ctx, EventTypeUserLoggedIn, event.Email, event)
}

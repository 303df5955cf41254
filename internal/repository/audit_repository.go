package repository

import (
	"context"

	"TAMCP/internal/domain/models"
	"TAMCP/internal/domain/repository"
)

// producer is the part of *pkgkafka.Producer the audit publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaAuditPublisher implements AuditPublisher for Kafka. Events are keyed
// by tool name so each tool's events stay ordered within a partition.
type KafkaAuditPublisher struct {
	producer producer
	topic    string
}

// NewKafkaAuditPublisher creates Kafka audit publisher.
func NewKafkaAuditPublisher(p producer, topic string) repository.AuditPublisher {
	return &KafkaAuditPublisher{producer: p, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, e *models.ToolCallEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.Tool), e)
}

// Close closes the underlying producer.
func (p *KafkaAuditPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopAuditPublisher drops events. Used when Kafka is disabled.
type NoopAuditPublisher struct{}

func NewNoopAuditPublisher() repository.AuditPublisher { return NoopAuditPublisher{} }

func (NoopAuditPublisher) Publish(context.Context, *models.ToolCallEvent) error { return nil }

func (NoopAuditPublisher) Close() error { return nil }

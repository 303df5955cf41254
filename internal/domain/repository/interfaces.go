package repository

import (
	"context"

	"TAMCP/internal/domain/models"
)

// AuditPublisher ships tool call events to an external sink.
type AuditPublisher interface {
	Publish(ctx context.Context, e *models.ToolCallEvent) error
	Close() error
}

type Metrics interface {
	RecordToolCall(tool, status string)
	RecordCacheLookup(tool string, hit bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

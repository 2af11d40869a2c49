package producers

import (
	"context"
	"log/slog"
)

// NoopPublisher drops every message. Used when Kafka is disabled.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.logger.Debug("Event publishing disabled, dropping message", "key", key)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

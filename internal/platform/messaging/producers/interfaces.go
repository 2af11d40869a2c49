package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher sends a JSON-encoded value under a partition key. Implementations
// must be safe for concurrent use by the services and the scheduler.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaWriter is the part of *kafka.Writer the ledger producer needs
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// topicAdmin is the subset of *kafka.Conn used to provision topics
type topicAdmin interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	CreateTopics(topics ...kafka.TopicConfig) error
}

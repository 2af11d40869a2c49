package producers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type topicRetry struct {
	attempts int
	delay    time.Duration
}

var defaultTopicRetry = topicRetry{attempts: 5, delay: 2 * time.Second}

// ensureTopic creates the topic unless its partitions can be read. A zero partition
// count or replication factor falls back to 1.
func ensureTopic(ctx context.Context, admin topicAdmin, topic kafka.TopicConfig, retry topicRetry, log *slog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= retry.attempts; attempt++ {
		partitions, err := admin.ReadPartitions(topic.Topic)
		if err == nil && len(partitions) > 0 {
			log.Info("Kafka topic already exists", "topic", topic.Topic, "partitions", len(partitions))
			return nil
		}
		if err == nil {
			break
		}
		lastErr = err
		log.Warn("Failed to read topic partitions", "topic", topic.Topic, "attempt", attempt, "error", err)

		if attempt < retry.attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retry.delay):
			}
		}
	}

	if topic.NumPartitions <= 0 {
		topic.NumPartitions = 1
	}
	if topic.ReplicationFactor <= 0 {
		topic.ReplicationFactor = 1
	}

	log.Info("Creating Kafka topic", "topic", topic.Topic, "partitions", topic.NumPartitions, "last_read_error", lastErr)
	if err := admin.CreateTopics(topic); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topic.Topic, err)
	}
	return nil
}

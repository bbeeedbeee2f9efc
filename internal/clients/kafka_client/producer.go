package kafka_client

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var producer *kafka.Producer

func InitProducer(broker string) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseProducer() {
	if producer == nil {
		return
	}
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishEvent sends one JSON-encoded event to the topic and waits for the
// broker's delivery report, so callers learn whether the notification
// actually went out.
func PublishEvent(topic string, key string, value any) error {
	if producer == nil {
		return fmt.Errorf("[KafkaClient] producer is not initialized")
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to serialize event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          jsonData,
	}

	if err := producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce event: %w", err)
	}

	e := <-deliveryChan
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
	}

	slog.Info("[KafkaClient] Event published",
		slog.String("topic", topic),
		slog.String("key", key))
	return nil
}

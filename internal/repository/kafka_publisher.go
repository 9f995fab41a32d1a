package repository

import (
	"context"

	"TrendML/internal/domain/models"
	pkgkafka "TrendML/pkg/kafka"
)

// KafkaDatasetPublisher announces prepared datasets on a Kafka topic.
type KafkaDatasetPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaDatasetPublisher creates a dataset publisher.
func NewKafkaDatasetPublisher(producer *pkgkafka.Producer, topic string) *KafkaDatasetPublisher {
	return &KafkaDatasetPublisher{producer: producer, topic: topic}
}

func (p *KafkaDatasetPublisher) Publish(ctx context.Context, ev *models.DatasetEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaDatasetPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

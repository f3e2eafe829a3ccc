package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"
)

// KafkaNotifier publishes notifications to a Kafka topic keyed by level.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka notifier initialized", "brokers", brokers, "topic", topic)

	return NewKafkaNotifierWithProducer(producer, topic, logger), nil
}

func NewKafkaNotifierWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (k *KafkaNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to marshal notification", "error", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(n.Level),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to send notification to kafka", "error", err)
		return
	}

	k.logger.DebugContext(ctx, "notification sent to kafka", "topic", k.topic, "partition", partition, "offset", offset, "id", n.ID)
}

func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}

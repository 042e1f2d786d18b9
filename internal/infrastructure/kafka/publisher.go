package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

// PublishTransaction keys the message by trader so one trader's events
// stay ordered within a partition.
func (k *KafkaPublisher) PublishTransaction(event TransactionEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TraderID),
		Value: v,
		Time:  time.Now(),
		Topic: k.topic,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

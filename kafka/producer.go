package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/anilkoundinya7/E-Commerce/models"
)

// Producer publishes order lifecycle events to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("kafka producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers))
	return &Producer{writer: w, log: log}
}

// PublishOrderEvent writes one event keyed by order id, so events for the
// same order stay in partition order.
func (p *Producer) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish order event",
			zap.String("event", event.Event),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

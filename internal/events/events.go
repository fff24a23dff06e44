package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// OrderEvent is published once per placed order, after the factory answered.
type OrderEvent struct {
	OrderID     uint      `json:"orderId"`
	DinerID     uint      `json:"dinerId"`
	FranchiseID uint      `json:"franchiseId"`
	StoreID     uint      `json:"storeId"`
	Items       int       `json:"items"`
	Total       float64   `json:"total"`
	Outcome     string    `json:"outcome"`
	ReportURL   string    `json:"reportUrl,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishOrder(ctx context.Context, event OrderEvent) error
	Close() error
}

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	logger.Info("Initializing Kafka order publisher", map[string]interface{}{
		"brokers": brokers,
		"topic":   topic,
	})
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to deliver order events", err, map[string]interface{}{
					"messages": len(messages),
				})
			}
		},
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// PublishOrder keys the message by franchise so one franchise's events stay ordered.
func (p *KafkaPublisher) PublishOrder(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.FranchiseID), 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

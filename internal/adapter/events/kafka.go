package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement-gateway/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher implements ports.EventPublisher on a kafka-go async writer.
// Publication is best effort: settlement already committed before the event
// is emitted, so a broker outage must never fail a webhook.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
// Returns nil when no brokers are configured; callers treat a nil publisher
// as events disabled.
func NewKafkaPublisher(brokers []string, topic string, log zerolog.Logger) *KafkaPublisher {
	if len(brokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			Async:        true,
			WriteTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// PublishSettlement emits a settlement event keyed by merchant so per-merchant
// ordering is preserved across partitions.
func (p *KafkaPublisher) PublishSettlement(ctx context.Context, ev ports.SettlementEvent) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal settlement event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.MerchantID),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Error().Err(err).
			Str("order_id", ev.OrderID).
			Msg("failed to publish settlement event")
		return fmt.Errorf("write settlement event: %w", err)
	}
	return nil
}

// Close flushes the async writer.
func (p *KafkaPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

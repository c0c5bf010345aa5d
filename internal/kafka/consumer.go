package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads events until ctx is cancelled or the handler fails.
// Messages that do not decode as events are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, Event) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			zap.S().Warnw("skipping undecodable event", "offset", msg.Offset, "error", err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

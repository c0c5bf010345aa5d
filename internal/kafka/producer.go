package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventFlightCancelled  = "flight_cancelled"
	EventStaffTransferred = "staff_transferred"
)

// Event is the payload published for every operational change. The worker
// consumes these to drive notifications.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FlightNo    string    `json:"flight_no,omitempty"`
	BookingID   int64     `json:"booking_id,omitempty"`
	PassengerID int64     `json:"passenger_id,omitempty"`
	StaffID     int64     `json:"staff_id,omitempty"`
	SeatNo      string    `json:"seat_no,omitempty"`
	Email       string    `json:"email,omitempty"`
	Details     string    `json:"details,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	zap.S().Debugw("published event", "topic", topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

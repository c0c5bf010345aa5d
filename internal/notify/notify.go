package notify

import (
	"context"

	"github.com/zvrva/flightops/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers passenger-facing notifications for consumed events.
// Delivery is a log line for now; the interface keeps the worker decoupled
// from the eventual channel.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	zap.S().Infow("notification",
		"type", event.Type,
		"email", event.Email,
		"flight_no", event.FlightNo,
		"booking_id", event.BookingID,
		"details", event.Details,
	)
	return nil
}

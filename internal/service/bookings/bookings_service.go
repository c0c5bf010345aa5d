package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type CreateBookingInput struct {
	PassengerID int64
	FlightID    int64
	SeatNo      string
}

type BookingService struct {
	repo        repository.BookingRepository
	flights     repository.FlightRepository
	passengers  repository.PassengerRepository
	cache       Cache
	producer    Producer
	eventsTopic string
}

func NewBookingService(
	repo repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
) *BookingService {
	return &BookingService{
		repo:        repo,
		flights:     flights,
		passengers:  passengers,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

func (s *BookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.repo.List(ctx, filter)
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerID == 0 || input.FlightID == 0 {
		return nil, domain.Invalid("Missing field: passenger_id or flight_id")
	}
	seatNo := strings.ToUpper(strings.TrimSpace(input.SeatNo))
	if seatNo == "" {
		return nil, domain.Invalid("Seat number cannot be empty")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.Invalid("Selected flight does not exist")
		}
		return nil, err
	}
	if flight.Status == domain.FlightStatusCancelled {
		return nil, domain.Invalidf("Cannot create booking on cancelled flight %s", flight.FlightNo)
	}

	passenger, err := s.passengers.GetByID(ctx, input.PassengerID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Passenger not found")
		}
		return nil, err
	}

	id, err := s.repo.Create(ctx, input.PassengerID, input.FlightID, seatNo)
	if err != nil {
		if repository.IsUniqueViolation(err, "ux_booking_flight_seat") {
			return nil, domain.Conflictf("Seat %s is already booked on this flight", seatNo)
		}
		if repository.IsForeignKeyViolation(err, "flight_id") {
			return nil, domain.Invalid("Invalid flight selected")
		}
		if repository.IsForeignKeyViolation(err, "passenger_id") {
			return nil, domain.Invalid("Invalid passenger or flight selection")
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.Event{
		ID:          uuid.NewString(),
		Type:        kafka.EventBookingCreated,
		FlightNo:    flight.FlightNo,
		BookingID:   id,
		PassengerID: passenger.ID,
		SeatNo:      seatNo,
		Email:       passenger.Email,
		OccurredAt:  time.Now(),
	})

	return s.GetByID(ctx, id)
}

func (s *BookingService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if seat, ok := fields["seat_no"].(string); ok {
		seatNo := strings.ToUpper(strings.TrimSpace(seat))
		if seatNo == "" {
			return domain.Invalid("Seat number cannot be empty")
		}
		fields["seat_no"] = seatNo
	}

	wasCancelled := false
	if status, ok := fields["status"].(string); ok {
		if status != string(domain.BookingStatusBooked) && status != string(domain.BookingStatusCancelled) {
			return domain.Invalid("Invalid status")
		}
		if status == string(domain.BookingStatusBooked) {
			flight, err := s.flights.GetByID(ctx, current.FlightID)
			if err != nil {
				return err
			}
			if flight.Status == domain.FlightStatusCancelled {
				return domain.Invalidf("Cannot change booking status to %q on cancelled flight %s", status, flight.FlightNo)
			}
		}
		wasCancelled = status == string(domain.BookingStatusCancelled) && current.Status == domain.BookingStatusBooked
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Booking not found")
		}
		if repository.IsUniqueViolation(err, "ux_booking_flight_seat") {
			return domain.Conflict("New seat is already booked on this flight")
		}
		return err
	}

	s.invalidate(ctx)
	if wasCancelled {
		s.publish(ctx, kafka.Event{
			ID:          uuid.NewString(),
			Type:        kafka.EventBookingCancelled,
			FlightNo:    current.FlightNo,
			BookingID:   id,
			PassengerID: current.PassengerID,
			SeatNo:      current.SeatNo,
			Email:       current.Email,
			OccurredAt:  time.Now(),
		})
	}
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Booking not found")
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *BookingService) Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.repo.Audit(ctx, limit)
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		zap.S().Warnw("failed to invalidate flights cache", "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, event kafka.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.ID, event); err != nil {
		zap.S().Warnw("failed to publish event", "type", event.Type, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)

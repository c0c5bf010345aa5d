package flights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Cancel(ctx context.Context, flightNo string) (int, error)
	Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error)
	AvailableSeats(ctx context.Context, flightID int64) (int, error)
	CompletePastFlights(ctx context.Context) (int64, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
	InvalidateAirports(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type CreateFlightInput struct {
	FlightNo      string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Status        string
	AirlineID     int64
	FromAirportID int64
	ToAirportID   int64
	Capacity      int
}

type FlightService struct {
	repo        repository.FlightRepository
	cache       Cache
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type FlightServiceOption func(*FlightService)

func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) { s.now = now }
}

func NewFlightService(repo repository.FlightRepository, cache Cache, producer Producer, eventsTopic string, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		repo:        repo,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// List serves the unfiltered collection from cache when possible; filtered
// queries always go to the database.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	unfiltered := filter == domain.FlightFilter{}
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			zap.S().Warnw("failed to cache flights", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Flight not found")
		}
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.FlightNo == "" {
		return nil, domain.Invalid("Missing field: flight_no")
	}
	if input.AirlineID == 0 || input.FromAirportID == 0 || input.ToAirportID == 0 {
		return nil, domain.Invalid("Missing airline or airport")
	}
	if !input.DepartureTime.After(s.now()) {
		return nil, domain.Invalid("Departure time must be in the future")
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return nil, domain.Invalid("Arrival time must be after departure time")
	}
	if input.Capacity < 0 {
		return nil, domain.Invalid("Capacity must be at least 1")
	}

	exists, err := s.repo.FlightNoExists(ctx, input.FlightNo, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("Flight number already exists")
	}

	flight := &domain.Flight{
		FlightNo:      input.FlightNo,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Status:        domain.FlightStatusScheduled,
		AirlineID:     input.AirlineID,
		FromAirportID: input.FromAirportID,
		ToAirportID:   input.ToAirportID,
		Capacity:      180,
	}
	if input.Status != "" {
		flight.Status = domain.FlightStatus(input.Status)
	}
	if input.Capacity > 0 {
		flight.Capacity = input.Capacity
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		if repository.IsForeignKeyViolation(err, "airline") {
			return nil, domain.Invalid("Invalid airline selected")
		}
		if repository.IsForeignKeyViolation(err, "airport") {
			return nil, domain.Invalid("Invalid airport selected")
		}
		return nil, err
	}

	s.invalidate(ctx)
	return flight, nil
}

var validFlightStatuses = map[string]bool{
	string(domain.FlightStatusScheduled): true,
	string(domain.FlightStatusDelayed):   true,
	string(domain.FlightStatusCancelled): true,
	string(domain.FlightStatusCompleted): true,
}

func (s *FlightService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}
	if no, ok := fields["flight_no"].(string); ok {
		exists, err := s.repo.FlightNoExists(ctx, no, id)
		if err != nil {
			return err
		}
		if exists {
			return domain.Conflict("Flight number already exists")
		}
	}
	if status, ok := fields["status"].(string); ok && !validFlightStatuses[status] {
		return domain.Invalid("Invalid status")
	}
	if capacity, ok := fields["capacity"].(int); ok && capacity < 1 {
		return domain.Invalid("Capacity must be at least 1")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Flight not found")
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.ActiveBookingCount(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.Conflictf("Cannot delete flight with %d active bookings. Cancel the flight first.", active)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Flight not found")
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Cancel marks the flight Cancelled, cancels its active bookings and
// publishes a flight_cancelled event. It returns the number of bookings
// cancelled.
func (s *FlightService) Cancel(ctx context.Context, flightNo string) (int, error) {
	if flightNo == "" {
		return 0, domain.Invalid("Missing flight_no")
	}

	cancelled, err := s.repo.Cancel(ctx, flightNo)
	if err != nil {
		if err == domain.ErrNotFound {
			return 0, domain.NotFound("Flight not found")
		}
		return 0, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.Event{
		ID:         uuid.NewString(),
		Type:       kafka.EventFlightCancelled,
		FlightNo:   flightNo,
		Details:    "flight cancelled with all active bookings",
		OccurredAt: s.now(),
	})
	return cancelled, nil
}

func (s *FlightService) Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	if _, err := s.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.repo.Bookings(ctx, flightID)
}

func (s *FlightService) AvailableSeats(ctx context.Context, flightID int64) (int, error) {
	flight, err := s.GetByID(ctx, flightID)
	if err != nil {
		return 0, err
	}
	return flight.AvailableSeats, nil
}

func (s *FlightService) CompletePastFlights(ctx context.Context) (int64, error) {
	completed, err := s.repo.CompletePastFlights(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if completed > 0 {
		s.invalidate(ctx)
	}
	return completed, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		zap.S().Warnw("failed to invalidate flights cache", "error", err)
	}
	if err := s.cache.InvalidateAirports(ctx); err != nil {
		zap.S().Warnw("failed to invalidate airports cache", "error", err)
	}
}

func (s *FlightService) publish(ctx context.Context, event kafka.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.ID, event); err != nil {
		zap.S().Warnw("failed to publish event", "type", event.Type, "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)

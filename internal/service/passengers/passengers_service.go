package passengers

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/kafka"
	"github.com/zvrva/flightops/internal/repository"
	"go.uber.org/zap"
)

type PassengerUseCase interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Bookings(ctx context.Context, id int64) ([]domain.PassengerBooking, error)
	BookingCount(ctx context.Context, id int64) (int, error)
	Search(ctx context.Context, search domain.PassengerSearch) ([]domain.Passenger, error)
	CreateWithBooking(ctx context.Context, input CreateWithBookingInput) (*BookingReceipt, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type CreatePassengerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type CreateWithBookingInput struct {
	CreatePassengerInput
	FlightNo string
	SeatNo   string
}

// BookingReceipt is the combined result of creating a passenger together
// with their first booking.
type BookingReceipt struct {
	Passenger *domain.Passenger
	BookingID int64
	FlightNo  string
	SeatNo    string
}

type PassengerService struct {
	repo        repository.PassengerRepository
	flights     repository.FlightRepository
	cache       Cache
	producer    Producer
	eventsTopic string
}

func NewPassengerService(repo repository.PassengerRepository, flights repository.FlightRepository, cache Cache, producer Producer, eventsTopic string) *PassengerService {
	return &PassengerService{repo: repo, flights: flights, cache: cache, producer: producer, eventsTopic: eventsTopic}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CleanPhone strips the separators callers commonly paste along with the
// number. Validation runs on the cleaned form, which is also what gets
// stored.
func CleanPhone(phone string) string {
	replacer := strings.NewReplacer("-", "", " ", "", "(", "", ")", "", "+", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

func validatePhone(clean string) error {
	if clean == "" {
		return domain.Invalid("Phone number is required")
	}
	for _, r := range clean {
		if !unicode.IsDigit(r) {
			return domain.Invalid("Phone number must contain only digits")
		}
	}
	if len(clean) != 10 {
		return domain.Invalid("Phone number must be exactly 10 digits")
	}
	return nil
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.repo.List(ctx)
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	passenger, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Passenger not found")
		}
		return nil, err
	}
	return passenger, nil
}

func (s *PassengerService) validateNew(ctx context.Context, input CreatePassengerInput, excludeID int64) (string, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return "", domain.Invalid("First name cannot be empty")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return "", domain.Invalid("Last name cannot be empty")
	}
	if !emailPattern.MatchString(input.Email) {
		return "", domain.Invalid("Invalid email format")
	}

	clean := CleanPhone(input.Phone)
	if err := validatePhone(clean); err != nil {
		return "", err
	}

	emailTaken, err := s.repo.EmailExists(ctx, input.Email, excludeID)
	if err != nil {
		return "", err
	}
	if emailTaken {
		return "", domain.Conflict("Email already exists")
	}

	phoneTaken, err := s.repo.PhoneExists(ctx, clean, excludeID)
	if err != nil {
		return "", err
	}
	if phoneTaken {
		return "", domain.Conflict("Phone number already exists")
	}
	return clean, nil
}

func (s *PassengerService) Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	clean, err := s.validateNew(ctx, input, 0)
	if err != nil {
		return nil, err
	}

	passenger := &domain.Passenger{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     input.Email,
		Phone:     clean,
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, domain.Conflict("Email already exists")
		}
		return nil, err
	}
	return passenger, nil
}

func (s *PassengerService) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return domain.Invalid("No fields to update")
	}

	if first, ok := fields["first_name"].(string); ok && strings.TrimSpace(first) == "" {
		return domain.Invalid("First name cannot be empty")
	}
	if last, ok := fields["last_name"].(string); ok && strings.TrimSpace(last) == "" {
		return domain.Invalid("Last name cannot be empty")
	}
	if email, ok := fields["email"].(string); ok {
		if !emailPattern.MatchString(email) {
			return domain.Invalid("Invalid email format")
		}
		taken, err := s.repo.EmailExists(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.Conflict("Email already exists")
		}
	}
	if phone, ok := fields["phone"].(string); ok {
		clean := CleanPhone(phone)
		if err := validatePhone(clean); err != nil {
			return err
		}
		taken, err := s.repo.PhoneExists(ctx, clean, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.Conflict("Phone number already exists")
		}
		fields["phone"] = clean
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Passenger not found")
		}
		return err
	}
	return nil
}

func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.BookingCount(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.Conflictf("Cannot delete passenger with %d active bookings. Cancel bookings first.", active)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFound("Passenger not found")
		}
		return err
	}
	return nil
}

func (s *PassengerService) Bookings(ctx context.Context, id int64) ([]domain.PassengerBooking, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Bookings(ctx, id)
}

func (s *PassengerService) BookingCount(ctx context.Context, id int64) (int, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.repo.BookingCount(ctx, id)
}

func (s *PassengerService) Search(ctx context.Context, search domain.PassengerSearch) ([]domain.Passenger, error) {
	return s.repo.Search(ctx, search)
}

// CreateWithBooking validates the passenger and the target flight together
// and creates both rows atomically.
func (s *PassengerService) CreateWithBooking(ctx context.Context, input CreateWithBookingInput) (*BookingReceipt, error) {
	if input.FlightNo == "" {
		return nil, domain.Invalid("Missing field: flight_no")
	}
	seatNo := strings.ToUpper(strings.TrimSpace(input.SeatNo))
	if seatNo == "" {
		return nil, domain.Invalid("Missing field: seat_no")
	}

	clean, err := s.validateNew(ctx, input.CreatePassengerInput, 0)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByNo(ctx, input.FlightNo)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.NotFound("Flight not found")
		}
		return nil, err
	}
	if flight.Status == domain.FlightStatusCancelled {
		return nil, domain.Invalid("Cannot book a cancelled flight")
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.Conflict("No seats available on this flight")
	}

	passenger := &domain.Passenger{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     input.Email,
		Phone:     clean,
	}
	bookingID, err := s.repo.CreateWithBooking(ctx, passenger, flight.ID, seatNo)
	if err != nil {
		if repository.IsUniqueViolation(err, "ux_booking_flight_seat") {
			return nil, domain.Conflict("Seat already booked on this flight")
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.Event{
		ID:          uuid.NewString(),
		Type:        kafka.EventBookingCreated,
		FlightNo:    flight.FlightNo,
		BookingID:   bookingID,
		PassengerID: passenger.ID,
		SeatNo:      seatNo,
		Email:       passenger.Email,
		OccurredAt:  time.Now(),
	})

	return &BookingReceipt{
		Passenger: passenger,
		BookingID: bookingID,
		FlightNo:  flight.FlightNo,
		SeatNo:    seatNo,
	}, nil
}

// invalidate drops the cached flights list: the new booking changed the
// available seat count of its flight.
func (s *PassengerService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		zap.S().Warnw("failed to invalidate flights cache", "error", err)
	}
}

func (s *PassengerService) publish(ctx context.Context, event kafka.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.ID, event); err != nil {
		zap.S().Warnw("failed to publish event", "type", event.Type, "error", err)
	}
}

var _ PassengerUseCase = (*PassengerService)(nil)

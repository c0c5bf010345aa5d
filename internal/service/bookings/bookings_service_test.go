package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/flightops/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, passengerID, flightID int64, seatNo string) (int64, error) {
	args := m.Called(ctx, passengerID, flightID, seatNo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByNo(ctx context.Context, flightNo string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) FlightNoExists(ctx context.Context, flightNo string, excludeID int64) (bool, error) {
	args := m.Called(ctx, flightNo, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) ActiveBookingCount(ctx context.Context, flightID int64) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockFlightRepository) Cancel(ctx context.Context, flightNo string) (int, error) {
	args := m.Called(ctx, flightNo)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) CompletePastFlights(ctx context.Context, deadline time.Time) (int64, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).(int64), args.Error(1)
}

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPassengerRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPassengerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPassengerRepository) PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPassengerRepository) Bookings(ctx context.Context, passengerID int64) ([]domain.PassengerBooking, error) {
	args := m.Called(ctx, passengerID)
	return args.Get(0).([]domain.PassengerBooking), args.Error(1)
}

func (m *MockPassengerRepository) BookingCount(ctx context.Context, passengerID int64) (int, error) {
	args := m.Called(ctx, passengerID)
	return args.Int(0), args.Error(1)
}

func (m *MockPassengerRepository) Search(ctx context.Context, search domain.PassengerSearch) ([]domain.Passenger, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) CreateWithBooking(ctx context.Context, p *domain.Passenger, flightID int64, seatNo string) (int64, error) {
	args := m.Called(ctx, p, flightID, seatNo)
	return args.Get(0).(int64), args.Error(1)
}

func TestBookingService_Create_CancelledFlight(t *testing.T) {
	flights := &MockFlightRepository{}
	svc := NewBookingService(&MockBookingRepository{}, flights, &MockPassengerRepository{}, nil, nil, "events")

	flights.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{
		ID: 1, FlightNo: "KL1001", Status: domain.FlightStatusCancelled,
	}, nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{PassengerID: 2, FlightID: 1, SeatNo: "3C"})

	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.EqualError(t, err, "Cannot create booking on cancelled flight KL1001")
}

func TestBookingService_Create_SeatTaken(t *testing.T) {
	repo := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	passengers := &MockPassengerRepository{}
	svc := NewBookingService(repo, flights, passengers, nil, nil, "events")

	flights.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{
		ID: 1, FlightNo: "KL1001", Status: domain.FlightStatusScheduled,
	}, nil)
	passengers.On("GetByID", mock.Anything, int64(2)).Return(&domain.Passenger{ID: 2}, nil)
	repo.On("Create", mock.Anything, int64(2), int64(1), "3C").
		Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "ux_booking_flight_seat"})

	_, err := svc.Create(context.Background(), CreateBookingInput{PassengerID: 2, FlightID: 1, SeatNo: " 3c "})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Seat 3C is already booked on this flight")
}

func TestBookingService_Create_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	passengers := &MockPassengerRepository{}
	svc := NewBookingService(repo, flights, passengers, nil, nil, "events")

	flights.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{
		ID: 1, FlightNo: "KL1001", Status: domain.FlightStatusScheduled,
	}, nil)
	passengers.On("GetByID", mock.Anything, int64(2)).Return(&domain.Passenger{ID: 2, Email: "a@b.io"}, nil)
	repo.On("Create", mock.Anything, int64(2), int64(1), "3C").Return(int64(9), nil)
	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Booking{ID: 9, SeatNo: "3C"}, nil)

	booking, err := svc.Create(context.Background(), CreateBookingInput{PassengerID: 2, FlightID: 1, SeatNo: "3c"})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), booking.ID)
	repo.AssertExpectations(t)
}

func TestBookingService_Update_RebookOnCancelledFlight(t *testing.T) {
	repo := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	svc := NewBookingService(repo, flights, &MockPassengerRepository{}, nil, nil, "events")

	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Booking{
		ID: 9, FlightID: 1, Status: domain.BookingStatusCancelled,
	}, nil)
	flights.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{
		ID: 1, FlightNo: "KL1001", Status: domain.FlightStatusCancelled,
	}, nil)

	err := svc.Update(context.Background(), 9, map[string]any{"status": "Booked"})

	assert.ErrorIs(t, err, domain.ErrInvalid)
	repo.AssertNotCalled(t, "Update")
}

func TestBookingService_Update_SeatConflict(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, &MockFlightRepository{}, &MockPassengerRepository{}, nil, nil, "events")

	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Booking{
		ID: 9, FlightID: 1, Status: domain.BookingStatusBooked,
	}, nil)
	repo.On("Update", mock.Anything, int64(9), map[string]any{"seat_no": "4D"}).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "ux_booking_flight_seat"})

	err := svc.Update(context.Background(), 9, map[string]any{"seat_no": "4d"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "New seat is already booked on this flight")
}

func TestBookingService_Delete_NotFound(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, &MockFlightRepository{}, &MockPassengerRepository{}, nil, nil, "events")

	repo.On("Delete", mock.Anything, int64(99)).Return(domain.ErrNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Booking not found")
}

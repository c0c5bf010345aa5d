package flights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/flightops/internal/domain"
)

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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) InvalidateAirports(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func fixedClock(t time.Time) FlightServiceOption {
	return WithClock(func() time.Time { return t })
}

func TestFlightService_List_CacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, nil, "events")

	cached := []domain.Flight{{ID: 1, FlightNo: "KL1001"}}
	cache.On("GetFlights", mock.Anything).Return(cached, nil)

	flights, err := svc.List(context.Background(), domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	repo.AssertNotCalled(t, "List")
}

func TestFlightService_List_FilteredSkipsCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, nil, "events")

	filter := domain.FlightFilter{Status: "Scheduled"}
	expected := []domain.Flight{{ID: 2, FlightNo: "KL1002"}}
	repo.On("List", mock.Anything, filter).Return(expected, nil)

	flights, err := svc.List(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, flights)
	cache.AssertNotCalled(t, "GetFlights")
	cache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_Create_Validation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, nil, "events", fixedClock(now))

	base := CreateFlightInput{
		FlightNo:      "KL1001",
		DepartureTime: now.Add(24 * time.Hour),
		ArrivalTime:   now.Add(26 * time.Hour),
		AirlineID:     1,
		FromAirportID: 1,
		ToAirportID:   2,
	}

	t.Run("departure must be in the future", func(t *testing.T) {
		input := base
		input.DepartureTime = now.Add(-time.Hour)
		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.EqualError(t, err, "Departure time must be in the future")
	})

	t.Run("arrival must be after departure", func(t *testing.T) {
		input := base
		input.ArrivalTime = input.DepartureTime.Add(-time.Minute)
		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.EqualError(t, err, "Arrival time must be after departure time")
	})

	t.Run("duplicate flight number", func(t *testing.T) {
		repo.On("FlightNoExists", mock.Anything, "KL1001", int64(0)).Return(true, nil).Once()
		_, err := svc.Create(context.Background(), base)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.EqualError(t, err, "Flight number already exists")
	})
}

func TestFlightService_Create_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, nil, "events", fixedClock(now))

	repo.On("FlightNoExists", mock.Anything, "KL1001", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.Capacity == 180 && f.Status == domain.FlightStatusScheduled
	})).Return(nil)
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	cache.On("InvalidateAirports", mock.Anything).Return(nil)

	flight, err := svc.Create(context.Background(), CreateFlightInput{
		FlightNo:      "KL1001",
		DepartureTime: now.Add(24 * time.Hour),
		ArrivalTime:   now.Add(26 * time.Hour),
		AirlineID:     1,
		FromAirportID: 1,
		ToAirportID:   2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 180, flight.Capacity)
	assert.Equal(t, domain.FlightStatusScheduled, flight.Status)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFlightService_Update_NoFields(t *testing.T) {
	svc := NewFlightService(&MockFlightRepository{}, nil, nil, "events")

	err := svc.Update(context.Background(), 1, map[string]any{})

	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.EqualError(t, err, "No fields to update")
}

func TestFlightService_Delete_ActiveBookings(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, nil, "events")

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{ID: 1, FlightNo: "KL1001"}, nil)
	repo.On("ActiveBookingCount", mock.Anything, int64(1)).Return(3, nil)

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Cannot delete flight with 3 active bookings. Cancel the flight first.")
	repo.AssertNotCalled(t, "Delete")
}

func TestFlightService_Cancel(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	svc := NewFlightService(repo, cache, producer, "events")

	repo.On("Cancel", mock.Anything, "KL1001").Return(4, nil)
	cache.On("InvalidateFlights", mock.Anything).Return(nil)
	cache.On("InvalidateAirports", mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, "events", mock.Anything, mock.Anything).Return(nil)

	cancelled, err := svc.Cancel(context.Background(), "KL1001")

	assert.NoError(t, err)
	assert.Equal(t, 4, cancelled)
	producer.AssertExpectations(t)
}

func TestFlightService_Cancel_NotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, nil, "events")

	repo.On("Cancel", mock.Anything, "ZZ999").Return(0, domain.ErrNotFound)

	_, err := svc.Cancel(context.Background(), "ZZ999")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Flight not found")
}

func TestFlightService_AvailableSeats(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, nil, "events")

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{ID: 1, Capacity: 180, AvailableSeats: 42}, nil)

	seats, err := svc.AvailableSeats(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 42, seats)
}

func TestFlightService_AvailableSeats_NotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, nil, "events")

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.AvailableSeats(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Flight not found")
}

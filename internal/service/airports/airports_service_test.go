package airports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/flightops/internal/domain"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAirportRepository) NameCityExists(ctx context.Context, name, city string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, city, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAirportRepository) ActiveDepartureCount(ctx context.Context, airportID int64) (int, error) {
	args := m.Called(ctx, airportID)
	return args.Int(0), args.Error(1)
}

func (m *MockAirportRepository) ActiveArrivalCount(ctx context.Context, airportID int64) (int, error) {
	args := m.Called(ctx, airportID)
	return args.Int(0), args.Error(1)
}

func (m *MockAirportRepository) StaffCount(ctx context.Context, airportID int64) (int, error) {
	args := m.Called(ctx, airportID)
	return args.Int(0), args.Error(1)
}

func (m *MockAirportRepository) HistoricalFlightCount(ctx context.Context, airportID int64) (int, error) {
	args := m.Called(ctx, airportID)
	return args.Int(0), args.Error(1)
}

func (m *MockAirportRepository) Departures(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, airportID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockAirportRepository) Arrivals(ctx context.Context, airportID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, airportID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockAirportRepository) Staff(ctx context.Context, airportID int64) ([]domain.Staff, error) {
	args := m.Called(ctx, airportID)
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func TestAirportService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateAirportInput
		wantErr string
	}{
		{name: "empty name", input: CreateAirportInput{City: "Amsterdam", Country: "NL"}, wantErr: "Airport name cannot be empty"},
		{name: "empty city", input: CreateAirportInput{Name: "Schiphol", Country: "NL"}, wantErr: "City cannot be empty"},
		{name: "empty country", input: CreateAirportInput{Name: "Schiphol", City: "Amsterdam"}, wantErr: "Country cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockAirportRepository{}
			svc := NewAirportService(repo, nil)

			_, err := svc.Create(context.Background(), tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalid)
			assert.EqualError(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestAirportService_Departures(t *testing.T) {
	repo := &MockAirportRepository{}
	svc := NewAirportService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Airport{ID: 1, Name: "Schiphol"}, nil)
	repo.On("Departures", mock.Anything, int64(1)).Return([]domain.Flight{
		{ID: 10, FlightNo: "KL1001"},
		{ID: 11, FlightNo: "KL1003"},
	}, nil)

	flights, err := svc.Departures(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, flights, 2)
	assert.Equal(t, "KL1001", flights[0].FlightNo)
}

func TestAirportService_Arrivals_NotFound(t *testing.T) {
	repo := &MockAirportRepository{}
	svc := NewAirportService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.Arrivals(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Airport not found")
	repo.AssertNotCalled(t, "Arrivals")
}

func TestAirportService_Staff(t *testing.T) {
	repo := &MockAirportRepository{}
	svc := NewAirportService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(2)).Return(&domain.Airport{ID: 2, Name: "Schiphol"}, nil)
	repo.On("Staff", mock.Anything, int64(2)).Return([]domain.Staff{
		{ID: 6, FirstName: "Noor", LastName: "Visser", Role: "Ground Crew"},
	}, nil)

	staff, err := svc.Staff(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, staff, 1)
	assert.Equal(t, "Visser", staff[0].LastName)
}

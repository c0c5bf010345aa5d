package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/service/flights"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightUseCase) Cancel(ctx context.Context, flightNo string) (int, error) {
	args := m.Called(ctx, flightNo)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightUseCase) Bookings(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockFlightUseCase) AvailableSeats(ctx context.Context, flightID int64) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightUseCase) CompletePastFlights(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newFlightRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFlightHandler(service).Register(router.Group("/api/flights"))
	return router
}

func TestFlightHandler_List(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("List", mock.Anything, domain.FlightFilter{Status: "Scheduled"}).
		Return([]domain.Flight{{ID: 1, FlightNo: "KL1001"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights?status=Scheduled", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    []domain.Flight `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "KL1001", body.Data[0].FlightNo)
}

func TestFlightHandler_Get_NotFound(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.NotFound("Flight not found"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Flight not found"}`, w.Body.String())
}

func TestFlightHandler_Get_InvalidID(t *testing.T) {
	router := newFlightRouter(&MockFlightUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid ID format"}`, w.Body.String())
}

func TestFlightHandler_Create(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("Create", mock.Anything, mock.MatchedBy(func(in flights.CreateFlightInput) bool {
		return in.FlightNo == "KL1001" && in.Capacity == 200
	})).Return(&domain.Flight{ID: 11, FlightNo: "KL1001"}, nil)

	payload := map[string]any{
		"flight_no":       "KL1001",
		"departure_time":  "2026-09-01T10:00:00",
		"arrival_time":    "2026-09-01 12:30",
		"airline_id":      1,
		"from_airport_id": 1,
		"to_airport_id":   2,
		"capacity":        200,
	}
	raw, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Flight created successfully","flight_id":11}`, w.Body.String())
}

func TestFlightHandler_Create_BadDate(t *testing.T) {
	router := newFlightRouter(&MockFlightUseCase{})

	raw := []byte(`{"flight_no":"KL1001","departure_time":"tomorrow","arrival_time":"2026-09-01T12:30:00"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid date format"}`, w.Body.String())
}

func TestFlightHandler_Update_OnlyProvidedFields(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("Update", mock.Anything, int64(3), map[string]any{"status": "Delayed"}).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/flights/3", bytes.NewReader([]byte(`{"status":"Delayed"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFlightHandler_Delete_Conflict(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("Delete", mock.Anything, int64(3)).
		Return(domain.Conflictf("Cannot delete flight with %d active bookings. Cancel the flight first.", 2))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/flights/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Cannot delete flight with 2 active bookings. Cancel the flight first."}`, w.Body.String())
}

func TestFlightHandler_Cancel(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("Cancel", mock.Anything, "KL1001").Return(4, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights/cancel", bytes.NewReader([]byte(`{"flight_no":"KL1001"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Flight KL1001 cancelled successfully. All associated bookings have been cancelled.", body["message"])
	assert.Equal(t, float64(4), body["cancelled_bookings"])
}

func TestFlightHandler_AvailableSeats(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("AvailableSeats", mock.Anything, int64(9)).Return(42, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/9/available-seats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"flight_id":9,"available_seats":42}`, w.Body.String())
}

func TestFlightHandler_AvailableSeats_NotFound(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	service.On("AvailableSeats", mock.Anything, int64(9)).Return(0, domain.NotFound("Flight not found"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/9/available-seats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Flight not found"}`, w.Body.String())
}

func TestParseTime(t *testing.T) {
	for _, value := range []string{
		"2026-09-01T10:00:00Z",
		"2026-09-01T10:00:00",
		"2026-09-01 10:00:00",
		"2026-09-01T10:00",
		"2026-09-01 10:00",
	} {
		parsed, err := parseTime(value)
		assert.NoError(t, err, value)
		assert.Equal(t, time.September, parsed.Month())
	}

	_, err := parseTime("next tuesday")
	assert.Error(t, err)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/service/airlines"
)

type MockAirlineUseCase struct {
	mock.Mock
}

func (m *MockAirlineUseCase) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockAirlineUseCase) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineUseCase) Create(ctx context.Context, input airlines.CreateAirlineInput) (*domain.Airline, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineUseCase) Update(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAirlineUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAirlineUseCase) Flights(ctx context.Context, id int64) ([]domain.Flight, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockAirlineUseCase) Staff(ctx context.Context, id int64) ([]domain.Staff, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func newAirlineRouter(service airlines.AirlineUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAirlineHandler(service).Register(router.Group("/api/airlines"))
	return router
}

func TestAirlineHandler_List(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("List", mock.Anything).Return([]domain.Airline{
		{ID: 1, Name: "KLM"},
		{ID: 2, Name: "Lufthansa"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/airlines", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    []domain.Airline `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
}

func TestAirlineHandler_Get_NotFound(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.NotFound("Airline not found"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/airlines/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Airline not found"}`, w.Body.String())
}

func TestAirlineHandler_Create(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("Create", mock.Anything, airlines.CreateAirlineInput{
		Name:        "KLM",
		ContactInfo: "info@klm.example",
	}).Return(&domain.Airline{ID: 5, Name: "KLM"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/airlines",
		bytes.NewReader([]byte(`{"name":"KLM","contact_info":"info@klm.example"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Airline created successfully","airline_id":5}`, w.Body.String())
}

func TestAirlineHandler_Update_OmitsMissingFields(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("Update", mock.Anything, int64(5), map[string]any{"name": "KLM Royal Dutch"}).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/airlines/5",
		bytes.NewReader([]byte(`{"name":"KLM Royal Dutch"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestAirlineHandler_Staff(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("Staff", mock.Anything, int64(1)).Return([]domain.Staff{
		{ID: 4, FirstName: "Eva", LastName: "Brand", Role: "Pilot", Airline: "KLM"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/airlines/1/staff", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    []domain.Staff `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "Brand", body.Data[0].LastName)
}

func TestAirlineHandler_Delete_Conflict(t *testing.T) {
	service := &MockAirlineUseCase{}
	router := newAirlineRouter(service)

	service.On("Delete", mock.Anything, int64(5)).
		Return(domain.Conflictf("Cannot delete airline with %d existing flights. Delete or reassign flights first.", 3))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/airlines/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Cannot delete airline with 3 existing flights. Delete or reassign flights first."}`, w.Body.String())
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.POST("/cancel", h.cancel)
	router.GET("/:id/bookings", h.bookings)
	router.GET("/:id/available-seats", h.availableSeats)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := domain.FlightFilter{
		Status:   c.Query("status"),
		FromCity: c.Query("from_city"),
		ToCity:   c.Query("to_city"),
		Date:     c.Query("date"),
	}
	flights, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flights, nil)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flight, nil)
}

type createFlightRequest struct {
	FlightNo      string `json:"flight_no"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Status        string `json:"status"`
	AirlineID     int64  `json:"airline_id"`
	FromAirportID int64  `json:"from_airport_id"`
	ToAirportID   int64  `json:"to_airport_id"`
	Capacity      int    `json:"capacity"`
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	departure, err := parseTime(req.DepartureTime)
	if err != nil {
		respondBadRequest(c, "Invalid date format")
		return
	}
	arrival, err := parseTime(req.ArrivalTime)
	if err != nil {
		respondBadRequest(c, "Invalid date format")
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNo:      req.FlightNo,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Status:        req.Status,
		AirlineID:     req.AirlineID,
		FromAirportID: req.FromAirportID,
		ToAirportID:   req.ToAirportID,
		Capacity:      req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Flight created successfully", gin.H{"flight_id": flight.ID})
}

type updateFlightRequest struct {
	FlightNo      *string `json:"flight_no"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	Status        *string `json:"status"`
	Capacity      *int    `json:"capacity"`
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if req.FlightNo != nil {
		fields["flight_no"] = *req.FlightNo
	}
	if req.DepartureTime != nil {
		t, err := parseTime(*req.DepartureTime)
		if err != nil {
			respondBadRequest(c, "Invalid departure_time format")
			return
		}
		fields["departure_time"] = t
	}
	if req.ArrivalTime != nil {
		t, err := parseTime(*req.ArrivalTime)
		if err != nil {
			respondBadRequest(c, "Invalid arrival_time format")
			return
		}
		fields["arrival_time"] = t
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Flight updated successfully", nil)
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Flight deleted successfully", nil)
}

type cancelFlightRequest struct {
	FlightNo string `json:"flight_no"`
}

func (h *FlightHandler) cancel(c *gin.Context) {
	var req cancelFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), req.FlightNo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK,
		fmt.Sprintf("Flight %s cancelled successfully. All associated bookings have been cancelled.", req.FlightNo),
		gin.H{"cancelled_bookings": cancelled})
}

func (h *FlightHandler) bookings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookings, err := h.service.Bookings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, bookings, nil)
}

func (h *FlightHandler) availableSeats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	seats, err := h.service.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "flight_id": id, "available_seats": seats})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/service/bookings"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/audit", h.audit)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *BookingHandler) list(c *gin.Context) {
	passengerID, _ := strconv.ParseInt(c.Query("passenger_id"), 10, 64)
	flightID, _ := strconv.ParseInt(c.Query("flight_id"), 10, 64)
	bookings, err := h.service.List(c.Request.Context(), domain.BookingFilter{
		Status:      c.Query("status"),
		PassengerID: passengerID,
		FlightID:    flightID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, bookings, nil)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, booking, nil)
}

type createBookingRequest struct {
	PassengerID int64  `json:"passenger_id"`
	FlightID    int64  `json:"flight_id"`
	SeatNo      string `json:"seat_no"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	booking, err := h.service.Create(c.Request.Context(), bookings.CreateBookingInput{
		PassengerID: req.PassengerID,
		FlightID:    req.FlightID,
		SeatNo:      req.SeatNo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, booking, gin.H{"message": "Booking created successfully"})
}

type updateBookingRequest struct {
	SeatNo *string `json:"seat_no"`
	Status *string `json:"status"`
}

func (h *BookingHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if req.SeatNo != nil {
		fields["seat_no"] = *req.SeatNo
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Booking updated successfully", nil)
}

func (h *BookingHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *BookingHandler) audit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.service.Audit(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries, nil)
}

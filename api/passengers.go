package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/domain"
	"github.com/zvrva/flightops/internal/service/passengers"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.POST("/create-with-booking", h.createWithBooking)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.GET("/:id/bookings", h.bookings)
	router.GET("/:id/booking-count", h.bookingCount)
}

func (h *PassengerHandler) list(c *gin.Context) {
	passengers, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, passengers, nil)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	passenger, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, passenger, nil)
}

type createPassengerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	passenger, err := h.service.Create(c.Request.Context(), passengers.CreatePassengerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Passenger created successfully", gin.H{"passenger_id": passenger.ID})
}

type createWithBookingRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FlightNo  string `json:"flight_no"`
	SeatNo    string `json:"seat_no"`
}

func (h *PassengerHandler) createWithBooking(c *gin.Context) {
	var req createWithBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.service.CreateWithBooking(c.Request.Context(), passengers.CreateWithBookingInput{
		CreatePassengerInput: passengers.CreatePassengerInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		FlightNo: req.FlightNo,
		SeatNo:   req.SeatNo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Passenger and booking created successfully", gin.H{
		"passenger_id": receipt.Passenger.ID,
		"booking_id":   receipt.BookingID,
		"flight_no":    receipt.FlightNo,
		"seat_no":      receipt.SeatNo,
	})
}

type updatePassengerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (h *PassengerHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger updated successfully", nil)
}

func (h *PassengerHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger deleted successfully", nil)
}

func (h *PassengerHandler) bookings(c *gin.Context) {
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

func (h *PassengerHandler) bookingCount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := h.service.BookingCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"passenger_id": id, "booking_count": count}, nil)
}

func (h *PassengerHandler) search(c *gin.Context) {
	minBookings, _ := strconv.Atoi(c.Query("min_bookings"))
	results, err := h.service.Search(c.Request.Context(), domain.PassengerSearch{
		Name:        c.Query("name"),
		Email:       c.Query("email"),
		MinBookings: minBookings,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, results, nil)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/service/analytics"
)

type AnalyticsHandler struct {
	service analytics.AnalyticsUseCase
}

func NewAnalyticsHandler(service analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Register(router *gin.RouterGroup) {
	router.GET("/above-average-bookings", h.aboveAverageBookings)
	router.GET("/passenger-bookings-detail", h.passengerBookingsDetail)
	router.GET("/unique-passengers-per-airline", h.uniquePassengersPerAirline)
	router.GET("/busiest-airports", h.busiestAirports)
}

func (h *AnalyticsHandler) aboveAverageBookings(c *gin.Context) {
	flights, err := h.service.AboveAverageFlights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flights, nil)
}

func (h *AnalyticsHandler) passengerBookingsDetail(c *gin.Context) {
	details, err := h.service.PassengerBookingDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, details, nil)
}

func (h *AnalyticsHandler) uniquePassengersPerAirline(c *gin.Context) {
	airlines, err := h.service.UniquePassengersPerAirline(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airlines, nil)
}

func (h *AnalyticsHandler) busiestAirports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	airports, err := h.service.BusiestAirports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airports, nil)
}

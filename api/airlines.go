package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/service/airlines"
)

type AirlineHandler struct {
	service airlines.AirlineUseCase
}

func NewAirlineHandler(service airlines.AirlineUseCase) *AirlineHandler {
	return &AirlineHandler{service: service}
}

func (h *AirlineHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.GET("/:id/flights", h.flights)
	router.GET("/:id/staff", h.staff)
}

func (h *AirlineHandler) list(c *gin.Context) {
	airlines, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airlines, nil)
}

func (h *AirlineHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	airline, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airline, nil)
}

type createAirlineRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

func (h *AirlineHandler) create(c *gin.Context) {
	var req createAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	airline, err := h.service.Create(c.Request.Context(), airlines.CreateAirlineInput{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Airline created successfully", gin.H{"airline_id": airline.ID})
}

type updateAirlineRequest struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

func (h *AirlineHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ContactInfo != nil {
		fields["contact_info"] = *req.ContactInfo
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Airline updated successfully", nil)
}

func (h *AirlineHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Airline deleted successfully", nil)
}

func (h *AirlineHandler) flights(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flights, err := h.service.Flights(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flights, nil)
}

func (h *AirlineHandler) staff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	staff, err := h.service.Staff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, staff, nil)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/service/airports"
)

type AirportHandler struct {
	service airports.AirportUseCase
}

func NewAirportHandler(service airports.AirportUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.GET("/:id/departures", h.departures)
	router.GET("/:id/arrivals", h.arrivals)
	router.GET("/:id/staff", h.staff)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airports, nil)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	airport, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, airport, nil)
}

type createAirportRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (h *AirportHandler) create(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	airport, err := h.service.Create(c.Request.Context(), airports.CreateAirportInput{
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Airport created successfully", gin.H{"airport_id": airport.ID})
}

type updateAirportRequest struct {
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

func (h *AirportHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Airport updated successfully", nil)
}

func (h *AirportHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Airport deleted successfully", nil)
}

func (h *AirportHandler) departures(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flights, err := h.service.Departures(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flights, nil)
}

func (h *AirportHandler) arrivals(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flights, err := h.service.Arrivals(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flights, nil)
}

func (h *AirportHandler) staff(c *gin.Context) {
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

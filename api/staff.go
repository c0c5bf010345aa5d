package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/service/staff"
)

type StaffHandler struct {
	service staff.StaffUseCase
}

func NewStaffHandler(service staff.StaffUseCase) *StaffHandler {
	return &StaffHandler{service: service}
}

func (h *StaffHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.POST("/transfer", h.transfer)
	router.GET("/:id/history", h.history)
}

func (h *StaffHandler) list(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, members, nil)
}

func (h *StaffHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	member, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, member, nil)
}

type createStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	AirlineID int64  `json:"airline_id"`
	AirportID int64  `json:"airport_id"`
}

func (h *StaffHandler) create(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	member, err := h.service.Create(c.Request.Context(), staff.CreateStaffInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		AirlineID: req.AirlineID,
		AirportID: req.AirportID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Staff member created successfully", gin.H{"staff_id": member.ID})
}

type updateStaffRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	AirlineID *int64  `json:"airline_id"`
}

func (h *StaffHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateStaffRequest
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
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.AirlineID != nil {
		fields["airline_id"] = *req.AirlineID
	}

	if err := h.service.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Staff member updated successfully", nil)
}

func (h *StaffHandler) remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Staff member deleted successfully", nil)
}

type transferStaffRequest struct {
	StaffID      int64  `json:"staff_id"`
	NewAirportID int64  `json:"new_airport_id"`
	Notes        string `json:"notes"`
}

func (h *StaffHandler) transfer(c *gin.Context) {
	var req transferStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Transfer(c.Request.Context(), staff.TransferInput{
		StaffID:      req.StaffID,
		NewAirportID: req.NewAirportID,
		Notes:        req.Notes,
	}); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Staff member transferred successfully", nil)
}

func (h *StaffHandler) history(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	records, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, records, nil)
}

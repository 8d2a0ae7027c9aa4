package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// GetAll handles GET /trips/
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripDTO, 0, len(trips))
	for _, trip := range trips {
		response = append(response, newTripDTO(trip))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetTrip handles GET /trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, ok := parseID(c, "trip")
	if !ok {
		return
	}

	trip, err := h.tripService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newTripDTO(trip))
}

// CreateTrip handles POST /trips/
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), service.TripInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     *req.Price,
		UserID:    *req.UserID,
		DriverID:  *req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newTripDTO(trip))
}

// PatchTrip handles PUT and PATCH /trips/:id
func (h *TripHandler) PatchTrip(c *gin.Context) {
	id, ok := parseID(c, "trip")
	if !ok {
		return
	}

	var req PatchTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	trip, err := h.tripService.Patch(c.Request.Context(), id, req.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newTripDTO(trip))
}

// DeleteTrip handles DELETE /trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c, "trip")
	if !ok {
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ErrorResponse{Detail: "Trip deleted successfully"})
}

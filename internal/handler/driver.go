package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripbook/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// GetAll handles GET /drivers/
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverWithTripDTO, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, newDriverWithTripDTO(d))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverWithTripDTO(driver))
}

// Register handles POST /drivers/
func (h *DriverHandler) Register(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newDriverDTO(driver))
}

// Replace handles PUT /drivers/:id
func (h *DriverHandler) Replace(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	driver, err := h.driverService.Replace(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverDTO(driver))
}

// Delete handles DELETE /drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ErrorResponse{Detail: "Driver deleted successfully"})
}

func (r CreateDriverRequest) toInput() service.DriverInput {
	return service.DriverInput{
		Name:            r.Name,
		LicenceNumber:   r.LicenceNumber,
		PhoneNumber:     r.PhoneNumber,
		Rating:          r.Rating,
		ExperienceYears: *r.ExperienceYears,
		Status:          r.Status,
	}
}

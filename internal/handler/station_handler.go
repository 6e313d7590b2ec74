package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/validation"
)

// StationHandler handles HTTP requests for stations
type StationHandler struct {
	service service.StationService
	logger  *slog.Logger
}

// NewStationHandler creates a new station handler
func NewStationHandler(service service.StationService, logger *slog.Logger) *StationHandler {
	return &StationHandler{
		service: service,
		logger:  logger,
	}
}

// CreateStationRequest accepts either a single station body or a batch
// under "stations". Batch elements are validated against the exact
// {name, latitude, longitude} key set.
type CreateStationRequest struct {
	Name      string           `json:"name"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Stations  []map[string]any `json:"stations"`
}

// Create handles POST /stations (ADMIN)
func (h *StationHandler) Create(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid station request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if len(req.Stations) > 0 {
		h.createBatch(c, req.Stations)
		return
	}

	if verr := validation.Validate(
		validation.NotBlank("name", req.Name),
		validation.Latitude("latitude", req.Latitude),
		validation.Longitude("longitude", req.Longitude),
	); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
		return
	}

	station, err := h.service.CreateStation(service.StationInput{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"station": station})
}

func (h *StationHandler) createBatch(c *gin.Context, raw []map[string]any) {
	inputs := make([]service.StationInput, 0, len(raw))

	for _, obj := range raw {
		if verr := validation.Validate(
			validation.ExactKeys("stations", obj, "name", "latitude", "longitude"),
		); verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
			return
		}

		name, nameOK := obj["name"].(string)
		latitude, latOK := obj["latitude"].(float64)
		longitude, lonOK := obj["longitude"].(float64)
		if !nameOK || !latOK || !lonOK {
			c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
			return
		}

		if verr := validation.Validate(
			validation.NotBlank("name", name),
			validation.Latitude("latitude", latitude),
			validation.Longitude("longitude", longitude),
		); verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
			return
		}

		inputs = append(inputs, service.StationInput{
			Name:      name,
			Latitude:  latitude,
			Longitude: longitude,
		})
	}

	stations, err := h.service.CreateStations(inputs)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stations": stations})
}

// List handles GET /stations
func (h *StationHandler) List(c *gin.Context) {
	stations, err := h.service.ListStations()
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// Get handles GET /stations/:id
func (h *StationHandler) Get(c *gin.Context) {
	stationID, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetStation(c.Request.Context(), stationID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Delete handles DELETE /stations/:id (ADMIN)
func (h *StationHandler) Delete(c *gin.Context) {
	stationID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteStation(stationID); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore handles PATCH /stations/restore/:id (ADMIN)
func (h *StationHandler) Restore(c *gin.Context) {
	stationID, ok := pathID(c)
	if !ok {
		return
	}

	station, err := h.service.RestoreStation(stationID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"station": station})
}

// respondServiceError maps service errors to HTTP responses
func (h *StationHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStationNameTaken), errors.Is(err, service.ErrStationNotDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "존재하지 않는 보관소입니다"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
	}
}

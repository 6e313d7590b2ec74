package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
	"github.com/modubox/lockerhub/backend-go/internal/validation"
)

// LockerHandler handles HTTP requests for lockers
type LockerHandler struct {
	service service.LockerService
	logger  *slog.Logger
}

// NewLockerHandler creates a new locker handler
func NewLockerHandler(service service.LockerService, logger *slog.Logger) *LockerHandler {
	return &LockerHandler{
		service: service,
		logger:  logger,
	}
}

type CreateLockerRequest struct {
	StationID float64 `json:"station_id"`
}

type ReserveRequest struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Create handles POST /lockers (ADMIN) — provisions a locker at a station
func (h *LockerHandler) Create(c *gin.Context) {
	var req CreateLockerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if verr := validation.Validate(
		validation.Integer("station_id", req.StationID),
	); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
		return
	}

	locker, err := h.service.CreateLocker(uint(req.StationID))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"locker": locker})
}

// List handles GET /lockers?stationId=
func (h *LockerHandler) List(c *gin.Context) {
	stationID, err := strconv.ParseUint(c.Query("stationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stationId은(는) 정수여야 합니다"})
		return
	}

	lockers, err := h.service.ListByStation(uint(stationID))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lockers": lockers})
}

// Mine handles GET /lockers/my
func (h *LockerHandler) Mine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	lockers, err := h.service.ListMine(userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lockers": lockers})
}

// Reserve handles POST /lockers/:id/reserve
func (h *LockerHandler) Reserve(c *gin.Context) {
	lockerID, ok := pathID(c)
	if !ok {
		return
	}

	userID, uok := middleware.GetUserID(c)
	if !uok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StartDate.IsZero() || req.EndDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "대여 기간을 입력해 주세요"})
		return
	}

	locker, err := h.service.Reserve(lockerID, userID, req.StartDate, req.EndDate)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"locker": locker})
}

// Release handles POST /lockers/:id/release
func (h *LockerHandler) Release(c *gin.Context) {
	lockerID, ok := pathID(c)
	if !ok {
		return
	}

	userID, uok := middleware.GetUserID(c)
	authority, aok := middleware.GetAuthority(c)
	if !uok || !aok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	locker, err := h.service.Release(lockerID, userID, authority)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"locker": locker})
}

// respondServiceError maps service errors to HTTP responses
func (h *LockerHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLockerOccupied),
		errors.Is(err, service.ErrLockerNotOccupied),
		errors.Is(err, service.ErrInvalidRentalPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotLockerOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrLockerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "존재하지 않는 보관함입니다"})
	case errors.Is(err, repository.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "존재하지 않는 보관소입니다"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
	}
}

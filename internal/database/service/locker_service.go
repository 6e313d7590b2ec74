package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
)

// LockerService defines the interface for locker rental business logic
type LockerService interface {
	CreateLocker(stationID uint) (*models.Locker, error)
	ListByStation(stationID uint) ([]models.Locker, error)
	ListMine(userID uint) ([]models.Locker, error)
	Reserve(lockerID, userID uint, startDate, endDate time.Time) (*models.Locker, error)
	Release(lockerID, userID uint, authority models.Authority) (*models.Locker, error)
}

type lockerService struct {
	lockerRepo  repository.LockerRepository
	stationRepo repository.StationRepository
	logger      *slog.Logger
}

// NewLockerService creates a new locker service instance
func NewLockerService(
	lockerRepo repository.LockerRepository,
	stationRepo repository.StationRepository,
	logger *slog.Logger,
) LockerService {
	return &lockerService{
		lockerRepo:  lockerRepo,
		stationRepo: stationRepo,
		logger:      logger,
	}
}

func (s *lockerService) CreateLocker(stationID uint) (*models.Locker, error) {
	s.logger.Info("📝 [LockerService] Creating locker", "station_id", stationID)

	// Station must exist and be active
	if _, err := s.stationRepo.FindByID(stationID); err != nil {
		return nil, err
	}

	locker := &models.Locker{
		StationID: stationID,
		Status:    models.StatusUnoccupied,
	}

	if err := s.lockerRepo.Create(locker); err != nil {
		s.logger.Error("❌ [LockerService] Failed to create locker", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [LockerService] Locker created", "locker_id", locker.ID)
	return locker, nil
}

func (s *lockerService) ListByStation(stationID uint) ([]models.Locker, error) {
	// Probe the station under the default scope so lockers of a deleted
	// station are unreachable even though the rows still exist
	if _, err := s.stationRepo.FindByID(stationID); err != nil {
		return nil, err
	}

	return s.lockerRepo.FindByStationID(stationID)
}

// ListMine returns the caller's occupied lockers labelled with the
// view-only "my locker" status
func (s *lockerService) ListMine(userID uint) ([]models.Locker, error) {
	lockers, err := s.lockerRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	for i := range lockers {
		lockers[i].Status = models.StatusMyLocker
	}

	return lockers, nil
}

func (s *lockerService) Reserve(lockerID, userID uint, startDate, endDate time.Time) (*models.Locker, error) {
	s.logger.Info("🔒 [LockerService] Reservation attempt", "locker_id", lockerID, "user_id", userID)

	locker, err := s.lockerRepo.FindByID(lockerID)
	if err != nil {
		return nil, err
	}

	if locker.Status == models.StatusOccupied {
		s.logger.Warn("⚠️ [LockerService] Locker already occupied", "locker_id", lockerID)
		return nil, ErrLockerOccupied
	}

	if !endDate.After(startDate) {
		return nil, ErrInvalidRentalPeriod
	}

	code := uuid.New()
	locker.Status = models.StatusOccupied
	locker.UserID = &userID
	locker.ReservationCode = &code
	locker.StartDate = &startDate
	locker.EndDate = &endDate

	if err := s.lockerRepo.Update(locker); err != nil {
		s.logger.Error("❌ [LockerService] Failed to reserve locker", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [LockerService] Locker reserved",
		"locker_id", lockerID,
		"user_id", userID,
		"reservation_code", code,
	)
	return locker, nil
}

// Release frees an occupied locker. Only the renter or an ADMIN may do it.
func (s *lockerService) Release(lockerID, userID uint, authority models.Authority) (*models.Locker, error) {
	s.logger.Info("🔓 [LockerService] Release attempt", "locker_id", lockerID, "user_id", userID)

	locker, err := s.lockerRepo.FindByID(lockerID)
	if err != nil {
		return nil, err
	}

	if locker.Status != models.StatusOccupied {
		return nil, ErrLockerNotOccupied
	}

	if !locker.IsOccupiedBy(userID) && authority != models.AuthorityAdmin {
		s.logger.Warn("⚠️ [LockerService] Release denied, not the renter",
			"locker_id", lockerID,
			"user_id", userID,
		)
		return nil, ErrNotLockerOwner
	}

	locker.Status = models.StatusUnoccupied
	locker.UserID = nil
	locker.ReservationCode = nil
	locker.StartDate = nil
	locker.EndDate = nil

	if err := s.lockerRepo.Update(locker); err != nil {
		s.logger.Error("❌ [LockerService] Failed to release locker", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [LockerService] Locker released", "locker_id", lockerID)
	return locker, nil
}

// Service errors
var (
	ErrLockerOccupied      = errors.New("이미 사용 중인 보관함입니다")
	ErrLockerNotOccupied   = errors.New("대여 중인 보관함이 아닙니다")
	ErrNotLockerOwner      = errors.New("본인이 대여한 보관함이 아닙니다")
	ErrInvalidRentalPeriod = errors.New("대여 기간이 올바르지 않습니다")
)

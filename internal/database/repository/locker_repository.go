package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
)

// LockerRepository defines the interface for locker data operations
type LockerRepository interface {
	Create(locker *models.Locker) error
	FindByID(id uint) (*models.Locker, error)
	FindByStationID(stationID uint) ([]models.Locker, error)
	FindByUserID(userID uint) ([]models.Locker, error)
	Update(locker *models.Locker) error
}

type lockerRepository struct {
	db *gorm.DB
}

// NewLockerRepository creates a new locker repository instance
func NewLockerRepository(db *gorm.DB) LockerRepository {
	return &lockerRepository{db: db}
}

func (r *lockerRepository) Create(locker *models.Locker) error {
	return r.db.Create(locker).Error
}

func (r *lockerRepository) FindByID(id uint) (*models.Locker, error) {
	var locker models.Locker
	err := r.db.First(&locker, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLockerNotFound
		}
		return nil, err
	}
	return &locker, nil
}

func (r *lockerRepository) FindByStationID(stationID uint) ([]models.Locker, error) {
	var lockers []models.Locker
	err := r.db.Where("station_id = ?", stationID).
		Order("id").
		Find(&lockers).Error
	if err != nil {
		return nil, err
	}
	return lockers, nil
}

func (r *lockerRepository) FindByUserID(userID uint) ([]models.Locker, error) {
	var lockers []models.Locker
	err := r.db.Where("user_id = ? AND status = ?", userID, models.StatusOccupied).
		Order("id").
		Find(&lockers).Error
	if err != nil {
		return nil, err
	}
	return lockers, nil
}

func (r *lockerRepository) Update(locker *models.Locker) error {
	return r.db.Save(locker).Error
}

// Repository errors
var (
	ErrLockerNotFound = errors.New("locker not found")
)

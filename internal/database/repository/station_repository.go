package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
)

// StationRepository defines the interface for station data operations.
// Delete and Restore carry the dependent lockers along inside one
// transaction: a locker must never be active while its station is deleted.
type StationRepository interface {
	Create(station *models.Station) error
	CreateBatch(stations []models.Station) error
	FindByName(name string) (*models.Station, error)
	FindByID(id uint) (*models.Station, error)
	FindAll() ([]models.Station, error)
	Update(station *models.Station) error
	Delete(id uint) error
	FindDeletedByID(id uint) (*models.Station, error)
	Restore(id uint) error
}

type stationRepository struct {
	db *gorm.DB
}

// NewStationRepository creates a new station repository instance
func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) Create(station *models.Station) error {
	return r.db.Create(station).Error
}

func (r *stationRepository) CreateBatch(stations []models.Station) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&stations).Error
	})
}

func (r *stationRepository) FindByName(name string) (*models.Station, error) {
	var station models.Station
	err := r.db.Where("name = ?", name).First(&station).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &station, nil
}

func (r *stationRepository) FindByID(id uint) (*models.Station, error) {
	var station models.Station
	err := r.db.Preload("Lockers").First(&station, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &station, nil
}

func (r *stationRepository) FindAll() ([]models.Station, error) {
	var stations []models.Station
	if err := r.db.Order("id").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

func (r *stationRepository) Update(station *models.Station) error {
	return r.db.Save(station).Error
}

// Delete soft-deletes the station and all of its active lockers as one unit
// of work. Both sides get the same deletion timestamp so Restore can tell
// cascade-deleted lockers apart from lockers deleted on their own.
func (r *stationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		result := tx.Model(&models.Station{}).
			Where("id = ?", id).
			Update("deleted_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStationNotFound
		}

		return tx.Model(&models.Locker{}).
			Where("station_id = ?", id).
			Update("deleted_at", now).Error
	})
}

func (r *stationRepository) FindDeletedByID(id uint) (*models.Station, error) {
	var station models.Station
	err := r.db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&station).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &station, nil
}

// Restore clears the deletion marker on the station and the lockers that
// went down with it, in the same transaction. Lockers that were already
// deleted before the station keep their own marker.
func (r *stationRepository) Restore(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var station models.Station
		if err := tx.Unscoped().
			Where("id = ? AND deleted_at IS NOT NULL", id).
			First(&station).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStationNotFound
			}
			return err
		}

		if err := tx.Unscoped().
			Model(&models.Station{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}

		return tx.Unscoped().
			Model(&models.Locker{}).
			Where("station_id = ? AND deleted_at = ?", id, station.DeletedAt.Time).
			Update("deleted_at", nil).Error
	})
}

// Repository errors
var (
	ErrStationNotFound = errors.New("station not found")
)

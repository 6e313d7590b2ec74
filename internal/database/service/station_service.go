package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modubox/lockerhub/backend-go/internal/database"
	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/weather"
)

// StationInput carries the fields for one station creation
type StationInput struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// StationDetail is a station with its lockers and, when the lookup
// succeeds, current weather at the station's coordinates
type StationDetail struct {
	Station     *models.Station   `json:"station"`
	Temperature *float64          `json:"temperature,omitempty"`
	Humidity    *float64          `json:"humidity,omitempty"`
}

// StationService defines the interface for station business logic
type StationService interface {
	CreateStation(input StationInput) (*models.Station, error)
	CreateStations(inputs []StationInput) ([]models.Station, error)
	GetStation(ctx context.Context, stationID uint) (*StationDetail, error)
	ListStations() ([]models.Station, error)
	DeleteStation(stationID uint) error
	RestoreStation(stationID uint) (*models.Station, error)
}

type stationService struct {
	stationRepo   repository.StationRepository
	weatherClient *weather.Client
	cache         *database.RedisClient
	logger        *slog.Logger
}

// NewStationService creates a new station service instance
func NewStationService(
	stationRepo repository.StationRepository,
	weatherClient *weather.Client,
	cache *database.RedisClient,
	logger *slog.Logger,
) StationService {
	return &stationService{
		stationRepo:   stationRepo,
		weatherClient: weatherClient,
		cache:         cache,
		logger:        logger,
	}
}

func (s *stationService) CreateStation(input StationInput) (*models.Station, error) {
	s.logger.Info("📝 [StationService] Creating station", "name", input.Name)

	// Check if the name is already taken. The unique index is the real
	// safety net under concurrent identical requests.
	existing, err := s.stationRepo.FindByName(input.Name)
	if err != nil && !errors.Is(err, repository.ErrStationNotFound) {
		s.logger.Error("❌ [StationService] Database error", "error", err)
		return nil, err
	}

	if existing != nil {
		s.logger.Warn("⚠️ [StationService] Station name already taken", "name", input.Name)
		return nil, ErrStationNameTaken
	}

	station := &models.Station{
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if err := s.stationRepo.Create(station); err != nil {
		s.logger.Error("❌ [StationService] Failed to create station", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [StationService] Station created", "station_id", station.ID)
	return station, nil
}

func (s *stationService) CreateStations(inputs []StationInput) ([]models.Station, error) {
	s.logger.Info("📝 [StationService] Creating stations in batch", "count", len(inputs))

	stations := make([]models.Station, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		// A name may clash with the database or with an earlier element of
		// the same batch
		if _, dup := seen[input.Name]; dup {
			s.logger.Warn("⚠️ [StationService] Duplicate station name in batch", "name", input.Name)
			return nil, ErrStationNameTaken
		}
		seen[input.Name] = struct{}{}

		existing, err := s.stationRepo.FindByName(input.Name)
		if err != nil && !errors.Is(err, repository.ErrStationNotFound) {
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("⚠️ [StationService] Station name already taken", "name", input.Name)
			return nil, ErrStationNameTaken
		}

		stations = append(stations, models.Station{
			Name:      input.Name,
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
		})
	}

	if err := s.stationRepo.CreateBatch(stations); err != nil {
		s.logger.Error("❌ [StationService] Failed to create stations", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [StationService] Stations created", "count", len(stations))
	return stations, nil
}

// GetStation returns the station with its lockers, enriched with current
// weather. Weather failures are logged and the fields omitted; they never
// fail the request.
func (s *stationService) GetStation(ctx context.Context, stationID uint) (*StationDetail, error) {
	station, err := s.stationRepo.FindByID(stationID)
	if err != nil {
		return nil, err
	}

	detail := &StationDetail{Station: station}

	snapshot := s.lookupWeather(ctx, station.Latitude, station.Longitude)
	if snapshot != nil {
		detail.Temperature = &snapshot.Temperature
		detail.Humidity = &snapshot.Humidity
	}

	return detail, nil
}

func (s *stationService) lookupWeather(ctx context.Context, latitude, longitude float64) *weather.Snapshot {
	var cached weather.Snapshot
	if hit, err := s.cache.GetWeather(ctx, latitude, longitude, &cached); err == nil && hit {
		return &cached
	}

	snapshot, err := s.weatherClient.Current(ctx, latitude, longitude)
	if err != nil {
		if !errors.Is(err, weather.ErrDisabled) {
			s.logger.Warn("⚠️ [StationService] Weather lookup failed, omitting fields", "error", err)
		}
		return nil
	}

	if err := s.cache.SetWeather(ctx, latitude, longitude, snapshot); err != nil {
		s.logger.Debug("💾 [StationService] Weather cache write failed", "error", err)
	}

	return snapshot
}

func (s *stationService) ListStations() ([]models.Station, error) {
	return s.stationRepo.FindAll()
}

// DeleteStation soft-deletes the station together with its lockers
func (s *stationService) DeleteStation(stationID uint) error {
	s.logger.Info("🗑️ [StationService] Deleting station", "station_id", stationID)

	if err := s.stationRepo.Delete(stationID); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			s.logger.Warn("⚠️ [StationService] Station not found", "station_id", stationID)
		}
		return err
	}

	s.logger.Info("✅ [StationService] Station deleted with its lockers", "station_id", stationID)
	return nil
}

// RestoreStation clears the deletion marker on the station and its lockers.
// The station must currently be soft-deleted.
func (s *stationService) RestoreStation(stationID uint) (*models.Station, error) {
	s.logger.Info("♻️ [StationService] Restoring station", "station_id", stationID)

	if _, err := s.stationRepo.FindByID(stationID); err == nil {
		s.logger.Warn("⚠️ [StationService] Station is not deleted", "station_id", stationID)
		return nil, ErrStationNotDeleted
	} else if !errors.Is(err, repository.ErrStationNotFound) {
		return nil, err
	}

	if _, err := s.stationRepo.FindDeletedByID(stationID); err != nil {
		return nil, err
	}

	if err := s.stationRepo.Restore(stationID); err != nil {
		s.logger.Error("❌ [StationService] Failed to restore station", "station_id", stationID, "error", err)
		return nil, err
	}

	station, err := s.stationRepo.FindByID(stationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [StationService] Station restored with its lockers", "station_id", stationID)
	return station, nil
}

// Service errors
var (
	ErrStationNameTaken  = errors.New("이미 등록된 보관소입니다")
	ErrStationNotDeleted = errors.New("삭제되지 않은 보관소입니다")
)

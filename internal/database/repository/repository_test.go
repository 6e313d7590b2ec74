package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.Locker{},
		&models.Post{},
		&models.Comment{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "hashedpassword",
		Nickname: "tester",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestStation(t *testing.T, db *gorm.DB, name string) *models.Station {
	t.Helper()

	station := &models.Station{
		Name:      name,
		Latitude:  37.5283169,
		Longitude: 126.9294254,
	}
	require.NoError(t, db.Create(station).Error)
	return station
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LockerStatus is the occupancy state stored for a locker.
// StatusMyLocker is a view-only label used in list-my-lockers responses,
// never persisted.
type LockerStatus string

const (
	StatusOccupied   LockerStatus = "occupied"
	StatusUnoccupied LockerStatus = "unoccupied"
	StatusMyLocker   LockerStatus = "my locker"
)

// Locker represents an individual locker unit at a station
type Locker struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	StationID       uint           `gorm:"not null;index" json:"station_id"`
	UserID          *uint          `gorm:"index" json:"user_id,omitempty"`
	Status          LockerStatus   `gorm:"not null;default:unoccupied" json:"status"`
	ReservationCode *uuid.UUID     `gorm:"type:uuid" json:"reservation_code,omitempty"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Station Station `gorm:"foreignKey:StationID" json:"-"`
	User    *User   `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (Locker) TableName() string {
	return "lockers"
}

// IsOccupiedBy reports whether the locker is currently rented by the given user
func (l *Locker) IsOccupiedBy(userID uint) bool {
	return l.Status == StatusOccupied && l.UserID != nil && *l.UserID == userID
}

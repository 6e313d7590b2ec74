package models

import (
	"time"

	"gorm.io/gorm"
)

// Station represents a physical locker-rental location
type Station struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Latitude  float64        `gorm:"not null" json:"latitude"`
	Longitude float64        `gorm:"not null" json:"longitude"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lockers []Locker `gorm:"foreignKey:StationID" json:"lockers,omitempty"`
}

// TableName overrides the table name
func (Station) TableName() string {
	return "stations"
}

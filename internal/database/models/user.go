package models

import (
	"time"

	"gorm.io/gorm"
)

// Authority is the role label gating route access
type Authority string

const (
	AuthorityUser  Authority = "USER"
	AuthorityAdmin Authority = "ADMIN"
)

// User represents a registered member of the locker service
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Nickname  string         `gorm:"not null" json:"nickname"`
	Authority Authority      `gorm:"not null;default:USER" json:"authority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lockers []Locker `gorm:"foreignKey:UserID" json:"lockers,omitempty"`
	Posts   []Post   `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the ADMIN authority
func (u *User) IsAdmin() bool {
	return u.Authority == AuthorityAdmin
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// Post represents a support post (inquiry) written by a user.
// Posts are create/read only and carry no soft-delete marker.
type Post struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"not null" json:"content"`
	Tags      pq.StringArray `gorm:"type:text[];default:'{}'" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// TableName overrides the table name
func (Post) TableName() string {
	return "posts"
}

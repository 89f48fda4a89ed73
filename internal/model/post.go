package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaImage = "image"
	MediaVideo = "video"

	// MaxPostMedia is enforced at input validation, not in the store.
	MaxPostMedia = 4
)

type Post struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User        `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Body      string      `gorm:"type:text;not null" json:"body"`
	Media     []PostMedia `gorm:"foreignKey:PostID" json:"media,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// PostMedia is an ordered attachment; Position fixes the display order.
type PostMedia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Kind      string    `gorm:"size:10;not null" json:"kind"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

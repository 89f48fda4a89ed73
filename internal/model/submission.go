package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is a gallery/survey entry with an ordered per-semester image
// set. Mutations re-validate ownership from the session.
type Submission struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User              `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Semester    string            `gorm:"size:20;not null" json:"semester"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Images      []SubmissionImage `gorm:"foreignKey:SubmissionID" json:"images,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type SubmissionImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	Position     int       `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaterialPDF   = "pdf"
	MaterialVideo = "video"
	MaterialLink  = "link"
	MaterialOther = "other"

	MaterialPending  = "pending"
	MaterialApproved = "approved"
	MaterialRejected = "rejected"
)

// Subject groups learning materials; created by admins only.
type Subject struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Materials   []Material `gorm:"foreignKey:SubjectID" json:"materials,omitempty"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

// Material starts pending; only admins move it to approved or rejected.
type Material struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null" json:"uploader_id"`
	Uploader   User      `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Type       string    `gorm:"size:10;not null" json:"type"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	Status     string    `gorm:"size:10;not null;default:pending;index" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}

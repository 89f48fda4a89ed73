package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records every admin mutation: who did what to which target.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"actor_id"`
	Actor      User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	TargetType string    `gorm:"size:20" json:"target_type"`
	TargetID   string    `gorm:"size:64" json:"target_id"`
	Detail     string    `gorm:"type:text" json:"detail"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

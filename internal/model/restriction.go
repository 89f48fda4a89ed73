package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RestrictionBan  = "ban"
	RestrictionMute = "mute"
)

// Restriction is a timed ban or mute grant against a user. A nil
// ExpiresAt means permanent. "Active" is always evaluated against
// wall-clock time at read time, never cached.
type Restriction struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string     `gorm:"size:10;not null" json:"type"`
	Reason      string     `gorm:"type:text" json:"reason"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// ActiveAt reports whether the restriction is in force at the given moment.
func (r *Restriction) ActiveAt(now time.Time) bool {
	return r.ExpiresAt == nil || r.ExpiresAt.After(now)
}

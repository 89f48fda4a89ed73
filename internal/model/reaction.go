package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubjectPost    = "post"
	SubjectComment = "comment"
)

// ReactionKinds is the fixed enumeration of reaction kinds.
var ReactionKinds = []string{"like", "dislike", "heart", "angry", "laugh", "wow", "sad"}

// ValidReactionKind reports whether kind belongs to the enumeration.
func ValidReactionKind(kind string) bool {
	for _, k := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Reaction maps a (subject, user) pair to exactly one kind. The composite
// unique index makes setting a reaction an upsert, never a second row.
type Reaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectType string    `gorm:"size:10;not null;uniqueIndex:idx_reaction_subject_user" json:"subject_type"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_subject_user" json:"subject_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_subject_user" json:"user_id"`
	Kind        string    `gorm:"size:10;not null" json:"kind"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

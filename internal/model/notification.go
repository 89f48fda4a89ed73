package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationNewComment   = "new_comment"
	NotificationCommentReply = "comment_reply"
)

// Notification is written by fan-out only; the recipient may only flip
// IsRead. The acting user is never its own recipient.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	ActorID     uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	Type        string     `gorm:"size:30;not null" json:"type"`
	PostID      *uuid.UUID `gorm:"type:uuid" json:"post_id,omitempty"`
	CommentID   *uuid.UUID `gorm:"type:uuid" json:"comment_id,omitempty"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}

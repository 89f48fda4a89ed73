package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerification holds a pending signup until the mailed 6-digit code
// is confirmed. The row is deleted on first successful use.
type EmailVerification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CollegeID    string    `gorm:"size:12;not null" json:"college_id"`
	DisplayName  string    `gorm:"size:100;not null" json:"display_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Code         string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// PasswordReset is a single-use, time-boxed reset token. Consumption and
// the password update share one transaction.
type PasswordReset struct {
	Token     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

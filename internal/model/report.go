package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportTargetPost    = "post"
	ReportTargetComment = "comment"
	ReportTargetUser    = "user"

	ReportPending   = "pending"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// ReportReasons is the fixed enumeration accepted at submission.
var ReportReasons = []string{"spam", "harassment", "hate_speech", "inappropriate", "impersonation", "other"}

// ValidReportReason reports whether reason belongs to the enumeration.
func ValidReportReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Report records a complaint against a post, comment or user. Status
// moves pending -> resolved|dismissed exactly once; resolving does not
// touch the reported content itself.
type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID     uuid.UUID  `gorm:"type:uuid;not null" json:"reporter_id"`
	Reporter       User       `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	TargetType     string     `gorm:"size:10;not null" json:"target_type"`
	TargetID       uuid.UUID  `gorm:"type:uuid;not null" json:"target_id"`
	Reason         string     `gorm:"size:30;not null" json:"reason"`
	Details        string     `gorm:"type:text" json:"details"`
	Status         string     `gorm:"size:10;not null;default:pending;index" json:"status"`
	ResolutionNote *string    `gorm:"type:text" json:"resolution_note,omitempty"`
	ActionTaken    *string    `gorm:"size:100" json:"action_taken,omitempty"`
	ResolvedByID   *uuid.UUID `gorm:"type:uuid" json:"resolved_by_id,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

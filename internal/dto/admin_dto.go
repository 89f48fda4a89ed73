package dto

import (
	"time"

	"dufaa.com/communitybackend/internal/model"
)

type CreateRestrictionRequest struct {
	UserID    string  `json:"user_id" binding:"required,uuid"`
	Type      string  `json:"type" binding:"required,oneof=ban mute"`
	Reason    string  `json:"reason" binding:"omitempty,max=500"`
	ExpiresAt *string `json:"expires_at" binding:"omitempty"` // RFC3339; omitted = permanent
}

// RestrictionView adds the wall-clock "currently in force" flag to the
// stored grant.
type RestrictionView struct {
	*model.Restriction
	Active bool `json:"active"`
}

// NewRestrictionViews evaluates the active flag for each grant at now.
func NewRestrictionViews(restrictions []*model.Restriction, now time.Time) []RestrictionView {
	views := make([]RestrictionView, len(restrictions))
	for i, r := range restrictions {
		views[i] = RestrictionView{Restriction: r, Active: r.ActiveAt(now)}
	}
	return views
}

type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
	Body  string `json:"body" binding:"required,min=1"`
}

type UpdateAnnouncementRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=2,max=255"`
	Body   *string `json:"body" binding:"omitempty,min=1"`
	Active *bool   `json:"active"`
}

package dto

import (
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
)

type MediaInput struct {
	URL  string `json:"url" binding:"required,url"`
	Kind string `json:"kind" binding:"required,oneof=image video"`
}

type CreatePostRequest struct {
	Body  string       `json:"body" binding:"required,min=1,max=5000"`
	Media []MediaInput `json:"media" binding:"omitempty,max=4,dive"`
}

// FeedQuery carries the cursor pagination inputs of the feed.
type FeedQuery struct {
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
	Cursor string `form:"cursor" binding:"omitempty,uuid"`
}

type AuthorView struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

type FeedItem struct {
	ID        uuid.UUID          `json:"id"`
	Author    AuthorView         `json:"author"`
	Body      string             `json:"body"`
	Media     []model.PostMedia  `json:"media"`
	Reactions map[string]int64   `json:"reactions"`
	CreatedAt time.Time          `json:"created_at"`
}

type FeedResponse struct {
	Items      []FeedItem `json:"items"`
	NextCursor *uuid.UUID `json:"next_cursor"`
}

// NewAuthorView projects the public slice of a user row.
func NewAuthorView(user *model.User) AuthorView {
	view := AuthorView{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	}
	if user.Profile != nil {
		view.AvatarURL = user.Profile.AvatarURL
	}
	return view
}

package dto

type UpdateProfileRequest struct {
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	CoverURL  *string `json:"cover_url" binding:"omitempty,url"`
	Location  *string `json:"location" binding:"omitempty,max=100"`
	Website   *string `json:"website" binding:"omitempty,url,max=255"`
}

type PeopleQuery struct {
	PageQuery
	Search string `form:"q" binding:"omitempty,max=100"`
}

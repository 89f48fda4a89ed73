package dto

type SubmissionRequest struct {
	Semester    string   `json:"semester" binding:"required,max=20"`
	Title       string   `json:"title" binding:"required,min=2,max=255"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,max=12,dive,url"`
}

type SubmissionListQuery struct {
	PageQuery
	Semester string `form:"semester" binding:"omitempty,max=20"`
}

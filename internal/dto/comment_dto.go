package dto

type CreateCommentRequest struct {
	Body     string  `json:"body" binding:"required,min=1,max=2000"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

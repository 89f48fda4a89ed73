package dto

type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

type CreateMaterialRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
	Type  string `json:"type" binding:"required,oneof=pdf video link other"`
	URL   string `json:"url" binding:"required,url"`
}

type UpdateMaterialStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

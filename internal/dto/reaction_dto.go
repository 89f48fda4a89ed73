package dto

type SetReactionRequest struct {
	SubjectType string `json:"subject_type" binding:"required,oneof=post comment"`
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
	Kind        string `json:"kind" binding:"required,oneof=like dislike heart angry laugh wow sad"`
}

type ReactionCountsQuery struct {
	SubjectType string `form:"subject_type" binding:"required,oneof=post comment"`
	SubjectID   string `form:"subject_id" binding:"required,uuid"`
}

type RemoveReactionRequest struct {
	SubjectType string `json:"subject_type" binding:"required,oneof=post comment"`
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
}

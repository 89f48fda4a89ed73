package dto

type CreateReportRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=post comment user"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required,oneof=spam harassment hate_speech inappropriate impersonation other"`
	Details    string `json:"details" binding:"omitempty,max=2000"`
}

type ResolveReportRequest struct {
	Status         string  `json:"status" binding:"required,oneof=resolved dismissed"`
	ResolutionNote *string `json:"resolution_note" binding:"omitempty,max=2000"`
	ActionTaken    *string `json:"action_taken" binding:"omitempty,max=100"`
}

type ReportListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending resolved dismissed"`
}

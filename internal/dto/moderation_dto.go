package dto

type ModerateUserRequest struct {
	Action string `json:"action" validate:"required,oneof=warn temp_ban perm_ban unban"`
	Reason string `json:"reason" validate:"max=500"`
	Days   *int   `json:"days" validate:"omitempty,min=1,max=365"`
}

type ModerateItemRequest struct {
	Action string `json:"action" validate:"required,oneof=hide restore delete"`
}

type ModerationResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
	Item    *ItemResponse `json:"item,omitempty"`
	// ReviewedReports is the number of pending reports closed by a restore.
	ReviewedReports int64 `json:"reviewed_reports,omitempty"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

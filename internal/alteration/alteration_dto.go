package alteration

import "go-timeconsole/internal/punch"

type ListAlterationsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type DecisionRequest struct {
	ReviewNotes string `json:"review_notes" binding:"max=2000"`
}

type BulkApproveRequest struct {
	IDs         []string `json:"ids"`
	ReviewNotes string   `json:"review_notes" binding:"max=2000"`
}

type AlterationResponse struct {
	ID          string     `json:"id"`
	PunchID     string     `json:"punch_id,omitempty"`
	EmployeeID  string     `json:"employee_id,omitempty"`
	Status      string     `json:"status"`
	RequestedAt string     `json:"requested_at,omitempty"`
	ReviewedAt  string     `json:"reviewed_at,omitempty"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewNotes string     `json:"review_notes,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Changes     PunchPatch `json:"changes"`
}

type DecisionResult struct {
	AlterationID  string               `json:"alteration_id"`
	Status        string               `json:"status"`
	ReviewedAt    string               `json:"reviewed_at"`
	ReviewedBy    string               `json:"reviewed_by"`
	PunchID       string               `json:"punch_id,omitempty"`
	AppliedFields []string             `json:"applied_fields"`
	Punch         *punch.PunchResponse `json:"punch,omitempty"`
}

type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BulkResult struct {
	ApprovedIDs []string      `json:"approved_ids"`
	Failures    []BulkFailure `json:"failures"`
}

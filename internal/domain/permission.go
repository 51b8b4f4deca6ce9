package domain

import "context"

// Apps a principal may be granted access to.
const (
	AppHR      = "hr"
	AppCRM     = "crm"
	AppBilling = "billing"
)

const (
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

const (
	ResourcePunch           = "punch"
	ResourcePunchAlteration = "punch_alteration"
	ResourcePayPeriod       = "pay_period"
	ResourceDepartment      = "department"
	ResourceEmployee        = "employee"
)

// Wildcard matches any view or resource id.
const Wildcard = "*"

type PermissionRequest struct {
	PrincipalID  string `json:"principal_id" binding:"required"`
	App          string `json:"app_id" binding:"required,oneof=hr crm billing"`
	View         string `json:"view_id"`
	ResourceType string `json:"resource_type" binding:"required"`
	ResourceID   string `json:"resource_id"`
	Action       string `json:"action" binding:"required,oneof=read write delete approve"`
}

type PermissionResponse struct {
	Allowed bool `json:"allowed"`
}

// PermissionChecker is the permission predicate every guarded operation
// consults. A false answer maps to Unauthorized.
type PermissionChecker interface {
	CanPerform(ctx context.Context, req PermissionRequest) (bool, error)
}

// PermissionFunc adapts a function to PermissionChecker.
type PermissionFunc func(ctx context.Context, req PermissionRequest) (bool, error)

func (f PermissionFunc) CanPerform(ctx context.Context, req PermissionRequest) (bool, error) {
	return f(ctx, req)
}

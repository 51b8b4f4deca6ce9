package rbac

// AppAccessRow grants a principal entry to one app.
type AppAccessRow struct {
	PrincipalID string
	App         string
}

// PermissionRow is one user permission record. Empty view, resource type or
// resource id mean any.
type PermissionRow struct {
	PrincipalID  string
	App          string
	View         string
	ResourceType string
	ResourceID   string
	Actions      []string
}

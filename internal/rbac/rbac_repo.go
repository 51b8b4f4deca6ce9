package rbac

import (
	"context"
	"strings"

	"go-timeconsole/internal/recordstore"
)

var (
	FieldUserID       = recordstore.F("user_id", "User")
	FieldAppID        = recordstore.F("app_id", "App")
	FieldViewID       = recordstore.F("view_id", "View")
	FieldResourceType = recordstore.F("resource_type", "Resource Type")
	FieldResourceID   = recordstore.F("resource_id", "Resource")
	FieldActions      = recordstore.F("actions", "Actions")
)

// Tables names the permission tables in the record store.
type Tables struct {
	AppAccess   string
	Permissions string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetAppAccess(ctx context.Context, principalID string) ([]AppAccessRow, error)
	GetPermissions(ctx context.Context, principalID string) ([]PermissionRow, error)
}

type repository struct {
	store  recordstore.Store
	tables Tables
	pager  recordstore.Pager
}

func NewRepository(store recordstore.Store, tables Tables, pager recordstore.Pager) Repository {
	return &repository{store: store, tables: tables, pager: pager}
}

func (r *repository) GetAppAccess(ctx context.Context, principalID string) ([]AppAccessRow, error) {
	records, err := r.listForPrincipal(ctx, r.tables.AppAccess, principalID)
	if err != nil {
		return nil, err
	}
	out := make([]AppAccessRow, 0, len(records))
	for _, rec := range records {
		out = append(out, AppAccessRow{
			PrincipalID: principalID,
			App:         strings.ToLower(rec.Text(FieldAppID)),
		})
	}
	return out, nil
}

func (r *repository) GetPermissions(ctx context.Context, principalID string) ([]PermissionRow, error) {
	records, err := r.listForPrincipal(ctx, r.tables.Permissions, principalID)
	if err != nil {
		return nil, err
	}
	out := make([]PermissionRow, 0, len(records))
	for _, rec := range records {
		actions := rec.Refs(FieldActions)
		for i := range actions {
			actions[i] = strings.ToLower(actions[i])
		}
		out = append(out, PermissionRow{
			PrincipalID:  principalID,
			App:          strings.ToLower(rec.Text(FieldAppID)),
			View:         rec.Text(FieldViewID),
			ResourceType: rec.Text(FieldResourceType),
			ResourceID:   rec.Text(FieldResourceID),
			Actions:      actions,
		})
	}
	return out, nil
}

func (r *repository) listForPrincipal(ctx context.Context, table, principalID string) ([]recordstore.Record, error) {
	return r.pager.ListAll(ctx, r.store, table, recordstore.ListQuery{
		Filters: recordstore.Filters{FieldUserID.Name: recordstore.Eq(principalID)},
	})
}

package employee

import (
	"context"

	"go-timeconsole/internal/recordstore"
)

// maxIDsPerQuery keeps id filters within what the store accepts in one body.
const maxIDsPerQuery = 100

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDs(ctx context.Context, ids []string) ([]Employee, error)
	List(ctx context.Context, departmentID string) ([]Employee, error)
}

type repository struct {
	store     recordstore.Store
	table     string
	nameField string
	pager     recordstore.Pager
}

func NewRepository(store recordstore.Store, table, nameField string, pager recordstore.Pager) Repository {
	return &repository{store: store, table: table, nameField: nameField, pager: pager}
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Employee, error) {
	out := make([]Employee, 0, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerQuery {
		end := min(start+maxIDsPerQuery, len(ids))
		records, err := r.pager.ListAll(ctx, r.store, r.table, recordstore.ListQuery{
			Filters: recordstore.Filters{recordstore.RecordIDFilter: recordstore.In(ids[start:end]...)},
		})
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			out = append(out, FromRecord(rec, r.nameField))
		}
	}
	return out, nil
}

func (r *repository) List(ctx context.Context, departmentID string) ([]Employee, error) {
	q := recordstore.ListQuery{Filters: recordstore.Filters{}}
	if departmentID != "" {
		q.Filters[FieldDepartment.Name] = recordstore.Eq(departmentID)
	}
	records, err := r.pager.ListAll(ctx, r.store, r.table, q)
	if err != nil {
		return nil, err
	}
	out := make([]Employee, 0, len(records))
	for _, rec := range records {
		out = append(out, FromRecord(rec, r.nameField))
	}
	return out, nil
}

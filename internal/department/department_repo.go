package department

import (
	"context"

	"go-timeconsole/internal/recordstore"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Department, error)
}

type repository struct {
	store recordstore.Store
	table string
	pager recordstore.Pager
}

func NewRepository(store recordstore.Store, table string, pager recordstore.Pager) Repository {
	return &repository{store: store, table: table, pager: pager}
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	records, err := r.pager.ListAll(ctx, r.store, r.table, recordstore.ListQuery{
		Sort: []recordstore.SortField{{FieldID: FieldName.Name, Direction: "asc"}},
	})
	if err != nil {
		return nil, err
	}
	depts := make([]Department, 0, len(records))
	for _, rec := range records {
		depts = append(depts, FromRecord(rec))
	}
	return depts, nil
}

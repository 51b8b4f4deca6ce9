package punch

import (
	"context"

	"go-timeconsole/internal/recordstore"
)

// ListFilter narrows a punch listing. From and To are inclusive
// YYYY-MM-DD bounds on the punch-in time.
type ListFilter struct {
	EmployeeID string
	From       string
	To         string
}

//go:generate mockgen -source=punch_repo.go -destination=mock/punch_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (Punch, error)
	List(ctx context.Context, filter ListFilter) ([]Punch, error)
	Update(ctx context.Context, id string, fields map[string]any) (Punch, error)
}

type repository struct {
	store recordstore.Store
	table string
	pager recordstore.Pager
}

func NewRepository(store recordstore.Store, table string, pager recordstore.Pager) Repository {
	return &repository{store: store, table: table, pager: pager}
}

func (r *repository) FindByID(ctx context.Context, id string) (Punch, error) {
	rec, err := r.store.Get(ctx, r.table, id)
	if err != nil {
		return Punch{}, err
	}
	return FromRecord(rec), nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Punch, error) {
	q := recordstore.ListQuery{
		Filters: recordstore.Filters{},
		Sort:    []recordstore.SortField{{FieldID: FieldPunchIn.Name, Direction: "desc"}},
	}
	if filter.EmployeeID != "" {
		q.Filters[FieldEmployee.Name] = recordstore.Eq(filter.EmployeeID)
	}
	if filter.From != "" || filter.To != "" {
		cond := recordstore.Condition{}
		if filter.From != "" {
			cond.Gte = filter.From
		}
		if filter.To != "" {
			cond.Lte = filter.To
		}
		q.Filters[FieldPunchIn.Name] = cond
	}

	records, err := r.pager.ListAll(ctx, r.store, r.table, q)
	if err != nil {
		return nil, err
	}
	out := make([]Punch, 0, len(records))
	for _, rec := range records {
		out = append(out, FromRecord(rec))
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]any) (Punch, error) {
	rec, err := r.store.Update(ctx, r.table, id, fields)
	if err != nil {
		return Punch{}, err
	}
	return FromRecord(rec), nil
}

package alteration

import (
	"context"

	"go-timeconsole/internal/recordstore"
)

//go:generate mockgen -source=alteration_repo.go -destination=mock/alteration_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (Alteration, error)
	List(ctx context.Context, status string) ([]Alteration, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

type repository struct {
	store recordstore.Store
	table string
	pager recordstore.Pager
}

func NewRepository(store recordstore.Store, table string, pager recordstore.Pager) Repository {
	return &repository{store: store, table: table, pager: pager}
}

func (r *repository) FindByID(ctx context.Context, id string) (Alteration, error) {
	rec, err := r.store.Get(ctx, r.table, id)
	if err != nil {
		return Alteration{}, err
	}
	return FromRecord(rec), nil
}

// List returns alterations newest first. An empty status lists everything.
// Status is matched after normalization since stored labels vary in case.
func (r *repository) List(ctx context.Context, status string) ([]Alteration, error) {
	q := recordstore.ListQuery{
		Sort: []recordstore.SortField{{FieldID: FieldRequestedAt.Name, Direction: "desc"}},
	}

	records, err := r.pager.ListAll(ctx, r.store, r.table, q)
	if err != nil {
		return nil, err
	}
	out := make([]Alteration, 0, len(records))
	for _, rec := range records {
		a := FromRecord(rec)
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := r.store.Update(ctx, r.table, id, fields)
	return err
}

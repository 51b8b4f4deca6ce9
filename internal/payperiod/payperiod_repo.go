package payperiod

import (
	"context"

	payperioderrors "go-timeconsole/internal/payperiod/errors"
	"go-timeconsole/internal/recordstore"

	"go.uber.org/zap"
)

// Tables names the record store tables the pay period repository reads.
type Tables struct {
	PayPeriods string
	TimeCards  string
	Templates  string
}

//go:generate mockgen -source=payperiod_repo.go -destination=mock/payperiod_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, departmentID string) ([]PayPeriod, error)
	FindByID(ctx context.Context, id string) (PayPeriod, error)
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)
	TimeCards(ctx context.Context, payPeriodID string) ([]TimeCard, error)
	Templates(ctx context.Context, departmentID string) ([]Template, error)
}

type repository struct {
	store  recordstore.Store
	tables Tables
	pager  recordstore.Pager
	logger *zap.Logger
}

func NewRepository(store recordstore.Store, tables Tables, pager recordstore.Pager, logger ...*zap.Logger) Repository {
	l := zap.L().Named("payperiod.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payperiod.repo")
	}
	return &repository{store: store, tables: tables, pager: pager, logger: l}
}

// List skips periods with unusable dates.
func (r *repository) List(ctx context.Context, departmentID string) ([]PayPeriod, error) {
	q := recordstore.ListQuery{Filters: recordstore.Filters{}}
	if departmentID != "" {
		q.Filters[FieldDepartment.Name] = recordstore.Eq(departmentID)
	}

	records, err := r.pager.ListAll(ctx, r.store, r.tables.PayPeriods, q)
	if err != nil {
		return nil, err
	}

	out := make([]PayPeriod, 0, len(records))
	for _, rec := range records {
		p, ok := FromRecord(rec)
		if !ok {
			r.logger.Warn("skipping pay period with invalid dates",
				zap.String("pay_period_id", rec.ID),
				zap.String("start_date", rec.Text(FieldStartDate)),
				zap.String("end_date", rec.Text(FieldEndDate)),
			)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (PayPeriod, error) {
	rec, err := r.store.Get(ctx, r.tables.PayPeriods, id)
	if err != nil {
		return PayPeriod{}, err
	}
	p, ok := FromRecord(rec)
	if !ok {
		return PayPeriod{}, payperioderrors.ErrInvalidPeriodDates
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p PayPeriod) (PayPeriod, error) {
	rec, err := r.store.Create(ctx, r.tables.PayPeriods, recordFields(p))
	if err != nil {
		return PayPeriod{}, err
	}
	p.ID = rec.ID
	return p, nil
}

func (r *repository) TimeCards(ctx context.Context, payPeriodID string) ([]TimeCard, error) {
	records, err := r.pager.ListAll(ctx, r.store, r.tables.TimeCards, recordstore.ListQuery{
		Filters: recordstore.Filters{FieldTimeCardPayPeriod.Name: recordstore.In(payPeriodID)},
	})
	if err != nil {
		return nil, err
	}
	out := make([]TimeCard, 0, len(records))
	for _, rec := range records {
		out = append(out, TimeCardFromRecord(rec))
	}
	return out, nil
}

func (r *repository) Templates(ctx context.Context, departmentID string) ([]Template, error) {
	records, err := r.pager.ListAll(ctx, r.store, r.tables.Templates, recordstore.ListQuery{
		Filters: recordstore.Filters{FieldTemplateDepartment.Name: recordstore.Eq(departmentID)},
	})
	if err != nil {
		return nil, err
	}
	out := make([]Template, 0, len(records))
	for _, rec := range records {
		out = append(out, TemplateFromRecord(rec))
	}
	return out, nil
}

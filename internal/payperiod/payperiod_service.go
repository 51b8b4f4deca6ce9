package payperiod

import (
	"context"
	"errors"
	"time"

	payperioderrors "go-timeconsole/internal/payperiod/errors"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	WindowLimit int
	// Concurrency bounds how many periods are aggregated at once.
	Concurrency int
	TotalsTTL   time.Duration
	// Location decides which calendar day is today.
	Location *time.Location
	Now      func() time.Time
}

func TotalsCacheKey(payPeriodID string) string {
	return "payperiod:totals:" + payPeriodID
}

//go:generate mockgen -source=payperiod_service.go -destination=mock/payperiod_service_mock.go -package=mock
type Service interface {
	Window(ctx context.Context, req ListPayPeriodsRequest) ([]PayPeriodSummary, error)
	Totals(ctx context.Context, id string) (PeriodTotalsResponse, error)
	Generate(ctx context.Context, req GeneratePayPeriodsRequest) (GenerateResult, error)
}

type service struct {
	repo       Repository
	aggregator Aggregator
	aside      *cache.Aside
	cfg        Config
	logger     *zap.Logger
}

// NewService serves pay period windows and totals. A nil aside disables
// the totals cache.
func NewService(repo Repository, aggregator Aggregator, aside *cache.Aside, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("payperiod.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payperiod.service")
	}
	if aside == nil {
		aside = cache.NewAside(nil, l)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &service{repo: repo, aggregator: aggregator, aside: aside, cfg: cfg, logger: l}
}

func (s *service) Window(ctx context.Context, req ListPayPeriodsRequest) ([]PayPeriodSummary, error) {
	periods, err := s.repo.List(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("list pay periods failed", zap.String("department_id", req.DepartmentID), zap.Error(err))
		return nil, apperror.Upstream(err, "failed to list pay periods")
	}

	limit := s.cfg.WindowLimit
	if req.Limit > 0 {
		limit = req.Limit
	}
	today := Today(s.cfg.Now(), s.cfg.Location)
	window := SelectWindow(periods, limit, today)

	out := make([]PayPeriodSummary, len(window))
	var g errgroup.Group
	g.SetLimit(max(1, s.cfg.Concurrency))
	for i, p := range window {
		g.Go(func() error {
			out[i] = PayPeriodSummary{Period: toResponse(p, today)}
			totals, err := s.totals(ctx, p)
			if err != nil {
				s.logger.Warn("pay period totals degraded",
					zap.String("request_id", contextutil.GetRequestID(ctx)),
					zap.String("pay_period_id", p.ID),
					zap.Error(err),
				)
				out[i].Totals = emptyTotals(p.ID)
				out[i].Degraded = true
				out[i].Error = err.Error()
				return nil
			}
			out[i].Totals = totals
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug("pay period window selected",
		zap.String("department_id", req.DepartmentID),
		zap.Int("candidates", len(periods)),
		zap.Int("selected", len(out)),
	)
	return out, nil
}

func (s *service) Totals(ctx context.Context, id string) (PeriodTotalsResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PeriodTotalsResponse{}, s.mapLoadError(id, err)
	}

	totals, err := s.totals(ctx, p)
	if err != nil {
		s.logger.Error("aggregate pay period failed", zap.String("pay_period_id", id), zap.Error(err))
		return PeriodTotalsResponse{}, apperror.Upstream(err, "failed to compute pay period totals")
	}
	return PeriodTotalsResponse{
		Period: toResponse(p, Today(s.cfg.Now(), s.cfg.Location)),
		Totals: totals,
	}, nil
}

// Generate creates the month's periods from the department's templates,
// skipping any whose dates already exist.
func (s *service) Generate(ctx context.Context, req GeneratePayPeriodsRequest) (GenerateResult, error) {
	templates, err := s.repo.Templates(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("load pay period templates failed", zap.String("department_id", req.DepartmentID), zap.Error(err))
		return GenerateResult{}, apperror.Upstream(err, "failed to load pay period templates")
	}
	generated := GenerateForMonth(templates, req.DepartmentID, req.Year, time.Month(req.Month))
	if len(generated) == 0 {
		return GenerateResult{}, payperioderrors.ErrNoActiveTemplates
	}

	existing, err := s.repo.List(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("list pay periods failed", zap.String("department_id", req.DepartmentID), zap.Error(err))
		return GenerateResult{}, apperror.Upstream(err, "failed to list pay periods")
	}
	seen := make(map[string]PayPeriod, len(existing))
	for _, p := range existing {
		seen[rangeKey(p)] = p
	}

	today := Today(s.cfg.Now(), s.cfg.Location)
	res := GenerateResult{Created: []PayPeriodResponse{}, Skipped: []PayPeriodResponse{}}
	for _, p := range generated {
		if dup, ok := seen[rangeKey(p)]; ok {
			res.Skipped = append(res.Skipped, toResponse(dup, today))
			continue
		}
		created, err := s.repo.Create(ctx, p)
		if err != nil {
			s.logger.Error("create pay period failed",
				zap.String("department_id", req.DepartmentID),
				zap.String("start_date", p.StartDate.Format(time.DateOnly)),
				zap.Error(err),
			)
			return res, apperror.Upstream(err, "failed to create pay period")
		}
		res.Created = append(res.Created, toResponse(created, today))
	}

	s.logger.Info("pay periods generated",
		zap.String("department_id", req.DepartmentID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("created", len(res.Created)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (s *service) totals(ctx context.Context, p PayPeriod) (PeriodTotals, error) {
	return cache.Fetch(ctx, s.aside, TotalsCacheKey(p.ID), s.cfg.TotalsTTL, func(ctx context.Context) (PeriodTotals, error) {
		return s.aggregator.Aggregate(ctx, p)
	})
}

func (s *service) mapLoadError(id string, err error) error {
	switch {
	case errors.Is(err, recordstore.ErrRecordNotFound):
		return payperioderrors.ErrPayPeriodNotFound
	case errors.Is(err, payperioderrors.ErrInvalidPeriodDates):
		return err
	}
	s.logger.Error("load pay period failed", zap.String("pay_period_id", id), zap.Error(err))
	return apperror.Upstream(err, "failed to load pay period")
}

func rangeKey(p PayPeriod) string {
	return p.StartDate.Format(time.DateOnly) + "/" + p.EndDate.Format(time.DateOnly)
}

func emptyTotals(id string) PeriodTotals {
	return PeriodTotals{
		PayPeriodID: id,
		TotalHours:  decimal.Zero,
		Employees:   []EmployeeTotals{},
	}
}

func toResponse(p PayPeriod, today time.Time) PayPeriodResponse {
	resp := PayPeriodResponse{
		ID:           p.ID,
		DepartmentID: p.DepartmentID,
		StartDate:    p.StartDate.Format(time.DateOnly),
		EndDate:      p.EndDate.Format(time.DateOnly),
		PeriodType:   p.PeriodType,
		Relevance:    p.RelevanceOf(today),
	}
	if p.PayoutDate != nil {
		resp.PayoutDate = p.PayoutDate.Format(time.DateOnly)
	}
	return resp
}

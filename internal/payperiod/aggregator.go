package payperiod

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-timeconsole/internal/punch"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const UnknownEmployeeName = "Unknown"

var minutesPerHour = decimal.NewFromInt(60)

// Hours converts whole minutes to hours rounded to two decimals.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).DivRound(minutesPerHour, 2)
}

type EmployeeTotals struct {
	EmployeeID    string          `json:"employee_id"`
	Name          string          `json:"name"`
	TotalMinutes  int             `json:"total_minutes"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	PunchCount    int             `json:"punch_count"`
	TimeCardCount int             `json:"time_card_count"`
}

// PeriodTotals is the aggregation of one pay period. Narrowed is false when
// the time card join produced no punches and the whole date range was used.
type PeriodTotals struct {
	PayPeriodID   string           `json:"pay_period_id"`
	TotalMinutes  int              `json:"total_minutes"`
	TotalHours    decimal.Decimal  `json:"total_hours"`
	PunchCount    int              `json:"punch_count"`
	TimeCardCount int              `json:"time_card_count"`
	Narrowed      bool             `json:"narrowed"`
	Employees     []EmployeeTotals `json:"employees"`
	ComputedAt    time.Time        `json:"computed_at"`
}

//go:generate mockgen -source=aggregator.go -destination=mock/aggregator_mock.go -package=mock
type Aggregator interface {
	Aggregate(ctx context.Context, p PayPeriod) (PeriodTotals, error)
}

type aggregator struct {
	repo    Repository
	punches punch.Repository
	names   punch.EmployeeNames
	now     func() time.Time
	logger  *zap.Logger
}

// NewAggregator joins time cards and punches for a period. names is optional;
// without it every employee is reported as Unknown.
func NewAggregator(repo Repository, punches punch.Repository, names punch.EmployeeNames, logger ...*zap.Logger) Aggregator {
	l := zap.L().Named("payperiod.aggregator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payperiod.aggregator")
	}
	return &aggregator{repo: repo, punches: punches, names: names, now: time.Now, logger: l}
}

func (a *aggregator) Aggregate(ctx context.Context, p PayPeriod) (PeriodTotals, error) {
	cards, err := a.repo.TimeCards(ctx, p.ID)
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("time cards for pay period %s: %w", p.ID, err)
	}

	inRange, err := a.punches.List(ctx, punch.ListFilter{
		From: p.StartDate.Format(time.DateOnly),
		To:   p.EndDate.Format(time.DateOnly),
	})
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("punches for pay period %s: %w", p.ID, err)
	}

	punches, narrowed := narrow(inRange, cards)
	if len(cards) > 0 && !narrowed {
		a.logger.Warn("time card join matched no punches, using full date range",
			zap.String("pay_period_id", p.ID),
			zap.Int("time_cards", len(cards)),
			zap.Int("punches_in_range", len(inRange)),
		)
	}

	totals := PeriodTotals{
		PayPeriodID:   p.ID,
		PunchCount:    len(punches),
		TimeCardCount: len(cards),
		Narrowed:      narrowed,
		ComputedAt:    a.now().UTC(),
	}

	byEmployee := map[string]*EmployeeTotals{}
	entry := func(id string) *EmployeeTotals {
		e, ok := byEmployee[id]
		if !ok {
			e = &EmployeeTotals{EmployeeID: id}
			byEmployee[id] = e
		}
		return e
	}

	for _, c := range cards {
		if c.EmployeeID != "" {
			entry(c.EmployeeID).TimeCardCount++
		}
	}
	for _, pu := range punches {
		// Unparseable and negative durations count as zero.
		minutes, ok := pu.Minutes()
		if !ok || minutes < 0 {
			minutes = 0
		}
		totals.TotalMinutes += minutes
		if pu.EmployeeID == "" {
			continue
		}
		e := entry(pu.EmployeeID)
		e.TotalMinutes += minutes
		e.PunchCount++
	}
	totals.TotalHours = Hours(totals.TotalMinutes)

	names := a.resolveNames(ctx, p.ID, byEmployee)
	totals.Employees = make([]EmployeeTotals, 0, len(byEmployee))
	for id, e := range byEmployee {
		e.Name = names[id]
		if e.Name == "" {
			e.Name = UnknownEmployeeName
		}
		e.TotalHours = Hours(e.TotalMinutes)
		totals.Employees = append(totals.Employees, *e)
	}
	sort.Slice(totals.Employees, func(i, j int) bool {
		x, y := totals.Employees[i], totals.Employees[j]
		if x.Name != y.Name {
			return x.Name < y.Name
		}
		return x.EmployeeID < y.EmployeeID
	})

	a.logger.Debug("pay period aggregated",
		zap.String("pay_period_id", p.ID),
		zap.Int("total_minutes", totals.TotalMinutes),
		zap.Int("punches", totals.PunchCount),
		zap.Bool("narrowed", narrowed),
	)
	return totals, nil
}

// resolveNames never fails the aggregation; a lookup error leaves every
// employee Unknown.
func (a *aggregator) resolveNames(ctx context.Context, periodID string, byEmployee map[string]*EmployeeTotals) map[string]string {
	if a.names == nil || len(byEmployee) == 0 {
		return map[string]string{}
	}
	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	names, err := a.names.Names(ctx, ids)
	if err != nil {
		a.logger.Warn("employee name lookup failed",
			zap.String("pay_period_id", periodID),
			zap.Int("employees", len(ids)),
			zap.Error(err),
		)
		return map[string]string{}
	}
	return names
}

// narrow keeps punches linked to one of the cards. It reports false and
// returns the input unchanged when there are no cards or nothing links.
func narrow(punches []punch.Punch, cards []TimeCard) ([]punch.Punch, bool) {
	if len(cards) == 0 {
		return punches, false
	}
	ids := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		ids[c.ID] = struct{}{}
	}

	linked := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		if _, ok := ids[p.TimeCardID]; ok {
			linked = append(linked, p)
		}
	}
	if len(linked) == 0 {
		return punches, false
	}
	return linked, true
}

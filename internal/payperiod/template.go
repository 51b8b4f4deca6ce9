package payperiod

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go-timeconsole/internal/recordstore"
)

var (
	FieldTemplateDepartment = recordstore.F("department_id", "Department")
	FieldPeriodNumber       = recordstore.F("period_number", "Period Number")
	FieldStartDay           = recordstore.F("start_day", "Start Day")
	FieldEndDay             = recordstore.F("end_day", "End Day")
	FieldPayoutDay          = recordstore.F("payout_day", "Payout Day")
	FieldPayoutMonthOffset  = recordstore.F("payout_month_offset", "Payout Month Offset")
	FieldTemplateActive     = recordstore.F("is_active", "Is Active")
)

const (
	payoutDayLast       = "last"
	generatedPeriodType = "semi_monthly"
	maxDayOfMonth       = 31
)

// Template describes one recurring period of a department's pay calendar.
// PayoutDay is "last" or a day number.
type Template struct {
	ID                string
	DepartmentID      string
	PeriodNumber      int
	StartDay          int
	EndDay            int
	PayoutDay         string
	PayoutMonthOffset int
	Active            bool
}

func TemplateFromRecord(r recordstore.Record) Template {
	t := Template{
		ID:           r.ID,
		DepartmentID: r.Ref(FieldTemplateDepartment),
		PayoutDay:    strings.ToLower(r.Text(FieldPayoutDay)),
		Active:       true,
	}
	if n, ok := r.Number(FieldPeriodNumber); ok {
		t.PeriodNumber = int(n)
	}
	if n, ok := r.Number(FieldStartDay); ok {
		t.StartDay = int(n)
	}
	if n, ok := r.Number(FieldEndDay); ok {
		t.EndDay = int(n)
	}
	if n, ok := r.Number(FieldPayoutMonthOffset); ok {
		t.PayoutMonthOffset = int(n)
	}
	// Only an explicit false disables a template.
	if v, ok := r.Lookup(FieldTemplateActive); ok {
		switch b := v.(type) {
		case bool:
			t.Active = b
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				t.Active = parsed
			}
		}
	}
	return t
}

func (t Template) valid() bool {
	return t.StartDay >= 1 && t.StartDay <= maxDayOfMonth &&
		t.EndDay >= 1 && t.EndDay <= maxDayOfMonth
}

// GenerateForMonth builds the periods the active templates describe for the
// given month, ordered by period number. Days past the end of a month are
// clamped to its last day. A template whose end day is before its start day
// ends in the following month.
func GenerateForMonth(templates []Template, departmentID string, year int, month time.Month) []PayPeriod {
	active := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t.Active && t.valid() {
			active = append(active, t)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].PeriodNumber < active[j].PeriodNumber
	})

	out := make([]PayPeriod, 0, len(active))
	for _, t := range active {
		start := dayInMonth(year, month, t.StartDay)

		endYear, endMonth := year, month
		if t.EndDay < t.StartDay {
			endYear, endMonth = addMonths(year, month, 1)
		}
		end := dayInMonth(endYear, endMonth, t.EndDay)

		p := PayPeriod{
			DepartmentID: departmentID,
			StartDate:    start,
			EndDate:      end,
			PeriodType:   generatedPeriodType,
		}
		if payout, ok := payoutDate(t, endYear, endMonth); ok {
			p.PayoutDate = &payout
		}
		out = append(out, p)
	}
	return out
}

func payoutDate(t Template, endYear int, endMonth time.Month) (time.Time, bool) {
	y, m := addMonths(endYear, endMonth, t.PayoutMonthOffset)
	if t.PayoutDay == payoutDayLast {
		return dayInMonth(y, m, maxDayOfMonth), true
	}
	day, err := strconv.Atoi(t.PayoutDay)
	if err != nil || day < 1 {
		return time.Time{}, false
	}
	return dayInMonth(y, m, day), true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dayInMonth(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, min(day, daysIn(year, month)), 0, 0, 0, 0, time.UTC)
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Year(), t.Month()
}

// recordFields renders a generated period for the record store.
func recordFields(p PayPeriod) map[string]any {
	fields := map[string]any{
		FieldDepartment.Name: []string{p.DepartmentID},
		FieldStartDate.Name:  p.StartDate.Format(time.DateOnly),
		FieldEndDate.Name:    p.EndDate.Format(time.DateOnly),
		FieldPeriodType.Name: p.PeriodType,
	}
	if p.PayoutDate != nil {
		fields[FieldPayoutDate.Name] = p.PayoutDate.Format(time.DateOnly)
	}
	return fields
}

package payperiod

import (
	"strings"
	"time"

	"go-timeconsole/internal/recordstore"
)

var (
	FieldDepartment = recordstore.F("department_id", "Department", "department")
	FieldStartDate  = recordstore.F("start_date", "Start Date")
	FieldEndDate    = recordstore.F("end_date", "End Date")
	FieldPayoutDate = recordstore.F("payout_date", "Payout Date")
	FieldPeriodType = recordstore.F("period_type", "Period Type")

	FieldTimeCardPayPeriod = recordstore.F("pay_period_id", "Pay Period")
	FieldTimeCardEmployee  = recordstore.F("employee_id", "Employee")
	FieldTimeCardClient    = recordstore.F("client_id", "Client")
)

type Relevance string

const (
	RelevanceCurrent  Relevance = "current"
	RelevanceUpcoming Relevance = "upcoming"
	RelevancePast     Relevance = "past"
)

// PayPeriod dates are calendar days at UTC midnight. EndDate is inclusive.
type PayPeriod struct {
	ID           string
	DepartmentID string
	StartDate    time.Time
	EndDate      time.Time
	PayoutDate   *time.Time
	PeriodType   string
}

type TimeCard struct {
	ID          string
	PayPeriodID string
	EmployeeID  string
	ClientID    string
}

// ParseDate reads YYYY-MM-DD, ignoring any time part after a T or space.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FromRecord returns false when the start or end date is missing or malformed.
func FromRecord(r recordstore.Record) (PayPeriod, bool) {
	start, ok := ParseDate(r.Text(FieldStartDate))
	if !ok {
		return PayPeriod{}, false
	}
	end, ok := ParseDate(r.Text(FieldEndDate))
	if !ok {
		return PayPeriod{}, false
	}

	p := PayPeriod{
		ID:           r.ID,
		DepartmentID: r.Ref(FieldDepartment),
		StartDate:    start,
		EndDate:      end,
		PeriodType:   r.Text(FieldPeriodType),
	}
	if payout, ok := ParseDate(r.Text(FieldPayoutDate)); ok {
		p.PayoutDate = &payout
	}
	return p, true
}

func TimeCardFromRecord(r recordstore.Record) TimeCard {
	return TimeCard{
		ID:          r.ID,
		PayPeriodID: r.Ref(FieldTimeCardPayPeriod),
		EmployeeID:  r.Ref(FieldTimeCardEmployee),
		ClientID:    r.Ref(FieldTimeCardClient),
	}
}

// Today is the current calendar day in loc, expressed as UTC midnight so it
// compares directly with period dates.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RelevanceOf classifies p against today. Both ends of the range are inclusive.
func (p PayPeriod) RelevanceOf(today time.Time) Relevance {
	switch {
	case p.StartDate.After(today):
		return RelevanceUpcoming
	case !today.After(p.EndDate):
		return RelevanceCurrent
	default:
		return RelevancePast
	}
}

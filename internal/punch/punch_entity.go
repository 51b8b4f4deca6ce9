package punch

import (
	"math"

	"go-timeconsole/internal/recordstore"
)

// Record fields, newest name first.
var (
	FieldEmployee         = recordstore.F("employee_id", "Employee", "employee")
	FieldClient           = recordstore.F("client_id", "Client", "client")
	FieldPunchIn          = recordstore.F("punch_in_time", "Punch In Time")
	FieldPunchOut         = recordstore.F("punch_out_time", "Punch Out Time")
	FieldTimezone         = recordstore.F("timezone", "Timezone")
	FieldPunchOutTimezone = recordstore.F("punch_out_timezone", "Punch Out Timezone")
	FieldMemo             = recordstore.F("memo", "Memo")
	FieldProjects         = recordstore.F("projects", "Projects")
	FieldDuration         = recordstore.F("duration", "Duration")
	FieldTimeCard         = recordstore.F("time_card_id", "Time Card")
)

type Punch struct {
	ID                  string
	EmployeeID          string
	ClientID            string
	PunchInTime         string
	PunchOutTime        string
	TimezoneRef         string
	PunchOutTimezoneRef string
	Memo                string
	ProjectIDs          []string
	// StoredMinutes is the precomputed duration field, when present.
	StoredMinutes *float64
	TimeCardID    string
}

func FromRecord(r recordstore.Record) Punch {
	p := Punch{
		ID:                  r.ID,
		EmployeeID:          r.Ref(FieldEmployee),
		ClientID:            r.Ref(FieldClient),
		PunchInTime:         r.Text(FieldPunchIn),
		PunchOutTime:        r.Text(FieldPunchOut),
		TimezoneRef:         r.Ref(FieldTimezone),
		PunchOutTimezoneRef: r.Ref(FieldPunchOutTimezone),
		Memo:                r.Text(FieldMemo),
		ProjectIDs:          r.Refs(FieldProjects),
		TimeCardID:          r.Ref(FieldTimeCard),
	}
	if n, ok := r.Number(FieldDuration); ok {
		p.StoredMinutes = &n
	}
	return p
}

// Minutes is the worked duration used for totals: a positive stored value
// wins, otherwise it is derived from the timestamps.
func (p Punch) Minutes() (int, bool) {
	if p.StoredMinutes != nil && *p.StoredMinutes > 0 {
		return int(math.Floor(*p.StoredMinutes + 0.5)), true
	}
	return DurationMinutes(p.PunchInTime, p.PunchOutTime)
}

// DerivedMinutes ignores the stored value.
func (p Punch) DerivedMinutes() (int, bool) {
	return DurationMinutes(p.PunchInTime, p.PunchOutTime)
}

package alteration

import (
	"strings"

	"go-timeconsole/internal/recordstore"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Outcome is the reviewer's decision.
type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

var (
	FieldPunch               = recordstore.F("punch_id", "Punch", "punch")
	FieldEmployee            = recordstore.F("employee_id", "Employee")
	FieldStatus              = recordstore.F("status", "Status")
	FieldRequestedAt         = recordstore.F("requested_at", "Requested At", "created_at")
	FieldReviewedAt          = recordstore.F("reviewed_at", "Reviewed At")
	FieldReviewedBy          = recordstore.F("reviewed_by", "Reviewed By")
	FieldReviewNotes         = recordstore.F("review_notes", "Review Notes")
	FieldReason              = recordstore.F("reason", "Reason")
	FieldNewPunchInTime      = recordstore.F("new_punch_in_time", "New Punch In Time")
	FieldNewPunchOutTime     = recordstore.F("new_punch_out_time", "New Punch Out Time")
	FieldNewMemo             = recordstore.F("new_memo", "New Memo")
	FieldNewProjects         = recordstore.F("new_projects", "New Projects")
	FieldNewTimezone         = recordstore.F("new_timezone", "New Timezone")
	FieldNewPunchOutTimezone = recordstore.F("new_punch_out_timezone", "New Punch Out Timezone")
)

// Optional keeps the difference between a key the store never sent, a key
// holding null and a key holding a value.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Present: true, Value: v} }

func Null[T any]() Optional[T] { return Optional[T]{Present: true, Null: true} }

// Set reports a present, non-null value.
func (o Optional[T]) Set() bool { return o.Present && !o.Null }

type Alteration struct {
	ID          string
	PunchID     string
	EmployeeID  string
	Status      string
	RequestedAt string
	ReviewedAt  string
	ReviewedBy  string
	ReviewNotes string
	Reason      string

	NewPunchInTime         Optional[string]
	NewPunchOutTime        Optional[string]
	NewMemo                Optional[string]
	NewProjectIDs          Optional[[]string]
	NewTimezoneRef         Optional[string]
	NewPunchOutTimezoneRef Optional[string]
}

func (a Alteration) IsPending() bool { return a.Status == StatusPending }

func FromRecord(r recordstore.Record) Alteration {
	return Alteration{
		ID:          r.ID,
		PunchID:     r.Ref(FieldPunch),
		EmployeeID:  r.Ref(FieldEmployee),
		Status:      normalizeStatus(r.Text(FieldStatus)),
		RequestedAt: r.Text(FieldRequestedAt),
		ReviewedAt:  r.Text(FieldReviewedAt),
		ReviewedBy:  r.Text(FieldReviewedBy),
		ReviewNotes: r.Text(FieldReviewNotes),
		Reason:      r.Text(FieldReason),

		NewPunchInTime:         optionalText(r, FieldNewPunchInTime),
		NewPunchOutTime:        optionalText(r, FieldNewPunchOutTime),
		NewMemo:                optionalText(r, FieldNewMemo),
		NewProjectIDs:          optionalRefs(r, FieldNewProjects),
		NewTimezoneRef:         optionalRef(r, FieldNewTimezone),
		NewPunchOutTimezoneRef: optionalRef(r, FieldNewPunchOutTimezone),
	}
}

// normalizeStatus folds labels such as "Pending" onto the lifecycle values.
// A missing status stays empty and matches no lifecycle state.
func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optionalText(r recordstore.Record, f recordstore.Field) Optional[string] {
	v, ok := r.Lookup(f)
	if !ok {
		return Optional[string]{}
	}
	if v == nil {
		return Null[string]()
	}
	return Some(recordstore.ValueText(v))
}

func optionalRef(r recordstore.Record, f recordstore.Field) Optional[string] {
	v, ok := r.Lookup(f)
	if !ok {
		return Optional[string]{}
	}
	if v == nil {
		return Null[string]()
	}
	refs := recordstore.ValueRefs(v)
	if len(refs) == 0 {
		return Some("")
	}
	return Some(refs[0])
}

func optionalRefs(r recordstore.Record, f recordstore.Field) Optional[[]string] {
	v, ok := r.Lookup(f)
	if !ok {
		return Optional[[]string]{}
	}
	if v == nil {
		return Null[[]string]()
	}
	return Some(recordstore.ValueRefs(v))
}

package punch_test

import (
	"testing"

	"go-timeconsole/internal/punch"
	"go-timeconsole/internal/recordstore"

	"github.com/stretchr/testify/assert"
)

func TestFromRecord(t *testing.T) {
	rec := recordstore.Record{
		ID: "pun_1",
		Fields: map[string]any{
			"Employee":       []any{"emp_1"},
			"Punch In Time":  "2025-01-10T09:00",
			"punch_out_time": "2025-01-10T17:30",
			"timezone":       []any{"tz_chi"},
			"memo":           "site visit",
			"projects":       []any{"prj_1", "prj_2"},
			"Time Card":      []any{"tc_1"},
			"duration":       480.0,
		},
	}

	p := punch.FromRecord(rec)
	assert.Equal(t, "pun_1", p.ID)
	assert.Equal(t, "emp_1", p.EmployeeID)
	assert.Equal(t, "2025-01-10T09:00", p.PunchInTime)
	assert.Equal(t, "2025-01-10T17:30", p.PunchOutTime)
	assert.Equal(t, "tz_chi", p.TimezoneRef)
	assert.Equal(t, "site visit", p.Memo)
	assert.Equal(t, []string{"prj_1", "prj_2"}, p.ProjectIDs)
	assert.Equal(t, "tc_1", p.TimeCardID)

	minutes, ok := p.Minutes()
	assert.True(t, ok)
	assert.Equal(t, 480, minutes)

	derived, ok := p.DerivedMinutes()
	assert.True(t, ok)
	assert.Equal(t, 510, derived)
}

func TestPunch_Minutes(t *testing.T) {
	zero := 0.0
	t.Run("non positive stored value is derived", func(t *testing.T) {
		p := punch.Punch{PunchInTime: "2025-01-10T09:00", PunchOutTime: "2025-01-10T10:00", StoredMinutes: &zero}
		minutes, ok := p.Minutes()
		assert.True(t, ok)
		assert.Equal(t, 60, minutes)
	})

	t.Run("open punch has no duration", func(t *testing.T) {
		p := punch.Punch{PunchInTime: "2025-01-10T09:00"}
		_, ok := p.Minutes()
		assert.False(t, ok)
	})
}

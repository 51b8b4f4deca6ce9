package payperiod_test

import (
	"testing"
	"time"

	"go-timeconsole/internal/payperiod"
	"go-timeconsole/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateFromRecord(t *testing.T) {
	tpl := payperiod.TemplateFromRecord(recordstore.Record{ID: "tpl_1", Fields: map[string]any{
		"department_id":       []any{"dep_1"},
		"period_number":       float64(2),
		"start_day":           float64(26),
		"end_day":             float64(10),
		"payout_day":          "Last",
		"payout_month_offset": "1",
	}})

	assert.Equal(t, "dep_1", tpl.DepartmentID)
	assert.Equal(t, 2, tpl.PeriodNumber)
	assert.Equal(t, 26, tpl.StartDay)
	assert.Equal(t, 10, tpl.EndDay)
	assert.Equal(t, "last", tpl.PayoutDay)
	assert.Equal(t, 1, tpl.PayoutMonthOffset)
	assert.True(t, tpl.Active, "missing is_active means active")

	inactive := payperiod.TemplateFromRecord(recordstore.Record{Fields: map[string]any{"is_active": false}})
	assert.False(t, inactive.Active)
}

func TestGenerateForMonth(t *testing.T) {
	templates := []payperiod.Template{
		{PeriodNumber: 2, StartDay: 26, EndDay: 10, PayoutDay: "15", PayoutMonthOffset: 0, Active: true},
		{PeriodNumber: 1, StartDay: 11, EndDay: 25, PayoutDay: "last", PayoutMonthOffset: 0, Active: true},
		{PeriodNumber: 3, StartDay: 1, EndDay: 5, PayoutDay: "last", Active: false},
	}

	t.Run("orders by period number and rolls over", func(t *testing.T) {
		got := payperiod.GenerateForMonth(templates, "dep_1", 2025, time.November)
		require.Len(t, got, 2)

		assert.Equal(t, date("2025-11-11"), got[0].StartDate)
		assert.Equal(t, date("2025-11-25"), got[0].EndDate)
		require.NotNil(t, got[0].PayoutDate)
		assert.Equal(t, date("2025-11-30"), *got[0].PayoutDate)
		assert.Equal(t, "dep_1", got[0].DepartmentID)

		assert.Equal(t, date("2025-11-26"), got[1].StartDate)
		assert.Equal(t, date("2025-12-10"), got[1].EndDate)
		require.NotNil(t, got[1].PayoutDate)
		assert.Equal(t, date("2025-12-15"), *got[1].PayoutDate)
	})

	t.Run("clamps days to month length", func(t *testing.T) {
		got := payperiod.GenerateForMonth([]payperiod.Template{
			{StartDay: 16, EndDay: 31, PayoutDay: "31", PayoutMonthOffset: 1, Active: true},
		}, "dep_1", 2024, time.February)
		require.Len(t, got, 1)
		assert.Equal(t, date("2024-02-16"), got[0].StartDate)
		assert.Equal(t, date("2024-02-29"), got[0].EndDate)
		assert.Equal(t, date("2024-03-31"), *got[0].PayoutDate)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		got := payperiod.GenerateForMonth([]payperiod.Template{
			{StartDay: 26, EndDay: 10, PayoutDay: "last", Active: true},
		}, "dep_1", 2025, time.December)
		require.Len(t, got, 1)
		assert.Equal(t, date("2026-01-10"), got[0].EndDate)
		assert.Equal(t, date("2026-01-31"), *got[0].PayoutDate)
	})

	t.Run("unknown payout day leaves payout empty", func(t *testing.T) {
		got := payperiod.GenerateForMonth([]payperiod.Template{
			{StartDay: 1, EndDay: 15, PayoutDay: "friday", Active: true},
		}, "dep_1", 2025, time.March)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].PayoutDate)
	})

	t.Run("invalid days are skipped", func(t *testing.T) {
		got := payperiod.GenerateForMonth([]payperiod.Template{
			{StartDay: 0, EndDay: 15, Active: true},
		}, "dep_1", 2025, time.March)
		assert.Empty(t, got)
	})
}

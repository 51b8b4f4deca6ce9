package timezone_test

import (
	"testing"
	"time"

	"go-timeconsole/internal/timezone"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviation_FallbackChain(t *testing.T) {
	winter := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		zone timezone.Zone
		want string
	}{
		{name: "canonical table", zone: timezone.Zone{CanonicalZone: "America/Los_Angeles"}, want: "PT"},
		{name: "city token", zone: timezone.Zone{CanonicalZone: "America/Vancouver"}, want: "PT"},
		{name: "tz database short name", zone: timezone.Zone{CanonicalZone: "America/Halifax"}, want: "AST"},
		{name: "display initials", zone: timezone.Zone{DisplayName: "Atlantic Standard Time"}, want: "AST"},
		{name: "literal utc", zone: timezone.Zone{}, want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Abbreviation(tt.zone, winter))
		})
	}
}

func TestFormatLocal(t *testing.T) {
	in := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-10 09:00 CT", timezone.FormatLocal(in, timezone.Zone{CanonicalZone: "America/Chicago"}))
	assert.Equal(t, "2025-01-10 15:00 UTC", timezone.FormatLocal(in, timezone.Zone{}))
}

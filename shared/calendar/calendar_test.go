package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stay/shared/calendar"
	"stay/shared/failure"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)

	return t
}

func TestDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	in := time.Date(2025, 3, 1, 23, 30, 0, 0, jakarta)

	assert.Equal(t, day("2025-03-01"), calendar.Day(in))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		wantKind failure.Kind
	}{
		{name: "valid range", start: "2025-03-01", end: "2025-03-03"},
		{name: "same day", start: "2025-03-01", end: "2025-03-01", wantKind: failure.KindInvalidRange},
		{name: "reversed", start: "2025-03-05", end: "2025-03-01", wantKind: failure.KindInvalidRange},
		{name: "malformed", start: "01/03/2025", end: "2025-03-03", wantKind: failure.KindInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := calendar.ParseRange(tt.start, tt.end)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, failure.Is(err, tt.wantKind))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, day(tt.start), from)
			assert.Equal(t, day(tt.end), to)
		})
	}
}

func TestDaysExcludeCheckOut(t *testing.T) {
	days := calendar.Days(day("2025-03-01"), day("2025-03-03"))

	assert.Equal(t, []time.Time{day("2025-03-01"), day("2025-03-02")}, days)
	assert.Equal(t, 2, calendar.Nights(day("2025-03-01"), day("2025-03-03")))
	assert.Empty(t, calendar.Days(day("2025-03-03"), day("2025-03-01")))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, calendar.Overlaps(day("2025-03-01"), day("2025-03-03"), day("2025-03-02"), day("2025-03-04")))
	assert.False(t, calendar.Overlaps(day("2025-03-01"), day("2025-03-03"), day("2025-03-03"), day("2025-03-05")), "back-to-back stays share no night")
	assert.True(t, calendar.Contains(day("2025-03-01"), day("2025-03-03"), day("2025-03-02")))
	assert.False(t, calendar.Contains(day("2025-03-01"), day("2025-03-03"), day("2025-03-03")))
	assert.True(t, calendar.ContainsInclusive(day("2025-03-01"), day("2025-03-03"), day("2025-03-03")))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(day("2025-03-01")))
	assert.True(t, calendar.IsWeekend(day("2025-03-02")))
	assert.False(t, calendar.IsWeekend(day("2025-03-03")))
}

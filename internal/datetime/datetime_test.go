package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/internal/datetime"
)

func ptr(t time.Time) *time.Time { return &t }

// ---- ParseDate / FormatDate ------------------------------------------------

func TestParseDate_OK(t *testing.T) {
	got, ok := datetime.ParseDate("05/03/2024")

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"31/13/2024", // month 13
		"30/02/2024", // no such day
		"29/02/2023", // not a leap year
		"1/1/2024",   // not zero-padded
		"01-01-2024",
		"2024/01/01",
		" 01/01/2024",
		"01/01/2024 ",
		"01/01/24",
		"aa/bb/cccc",
	} {
		t.Run(in, func(t *testing.T) {
			_, ok := datetime.ParseDate(in)
			assert.False(t, ok)
		})
	}
}

func TestParseDate_LeapDay(t *testing.T) {
	_, ok := datetime.ParseDate("29/02/2024")
	assert.True(t, ok)
}

// TestFormatDate_RoundTrip checks FormatDate(ParseDate(s)) == s over every
// day of a leap year and a common year.
func TestFormatDate_RoundTrip(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
			s := d.Format("02/01/2006")
			parsed, ok := datetime.ParseDate(s)
			require.True(t, ok, s)
			require.Equal(t, s, datetime.FormatDate(parsed))
		}
	}
}

// ---- ParseClock ------------------------------------------------------------

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 9*time.Hour + 30*time.Minute, true},
		{"23:59", 23*time.Hour + 59*time.Minute, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:30", 0, false},
		{"09.30", 0, false},
		{"0930", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := datetime.ParseClock(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "07:05", datetime.FormatClock(7*time.Hour+5*time.Minute))
	assert.Equal(t, "00:00", datetime.FormatClock(0))
}

// ---- CombineDateAndTime ----------------------------------------------------

func TestCombineDateAndTime(t *testing.T) {
	got, ok := datetime.CombineDateAndTime("10/06/2025", "14:15")

	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 15, 0, 0, time.UTC), got)
}

func TestCombineDateAndTime_MissingTimeIsMidnight(t *testing.T) {
	got, ok := datetime.CombineDateAndTime("10/06/2025", "")

	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestCombineDateAndTime_BadInput(t *testing.T) {
	_, ok := datetime.CombineDateAndTime("31/13/2024", "10:00")
	assert.False(t, ok, "bad date")

	_, ok = datetime.CombineDateAndTime("10/06/2025", "25:00")
	assert.False(t, ok, "bad time")
}

// ---- DaysBetweenInclusive --------------------------------------------------

func TestDaysBetweenInclusive(t *testing.T) {
	d1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, datetime.DaysBetweenInclusive(ptr(d1), ptr(d1)), "same day")
	assert.Equal(t, 3, datetime.DaysBetweenInclusive(ptr(d1), ptr(d1.AddDate(0, 0, 2))))
	assert.Equal(t, 2, datetime.DaysBetweenInclusive(ptr(d1.Add(23*time.Hour)), ptr(d1.AddDate(0, 0, 1))),
		"time of day is ignored")
	assert.Equal(t, 0, datetime.DaysBetweenInclusive(ptr(d1.AddDate(0, 0, 1)), ptr(d1)), "end before start")
}

func TestDaysBetweenInclusive_NilEndpoint(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, datetime.DaysBetweenInclusive(nil, ptr(d)))
	assert.Equal(t, 0, datetime.DaysBetweenInclusive(ptr(d), nil))
	assert.Equal(t, 0, datetime.DaysBetweenInclusive(nil, nil))
}

func TestDaySpan(t *testing.T) {
	assert.Equal(t, 1, datetime.DaySpan("01/06/2025", ""))
	assert.Equal(t, 5, datetime.DaySpan("28/02/2024", "03/03/2024"))
	assert.Equal(t, 0, datetime.DaySpan("31/13/2024", "01/01/2025"))
}

// Package datetime parses and formats the locale date and clock formats used
// throughout Waypoint and turns them into comparable instants.
//
// The formats are strict: dates are dd/MM/yyyy and clock times are HH:mm on a
// 24-hour clock, zero-padded. Anything else is a parse failure, reported as a
// false ok value rather than an error because half-typed input is normal.
package datetime

import (
	"time"
)

const (
	// DateLayout is the Go layout for dd/MM/yyyy.
	DateLayout = "02/01/2006"

	// ClockLayout is the Go layout for HH:mm.
	ClockLayout = "15:04"
)

// ParseDate parses a dd/MM/yyyy calendar date into UTC midnight of that day.
// ok is false for any malformed or non-existent date (31/13/2024, 30/02/2024,
// 1/1/2024, " 01/01/2024").
func ParseDate(text string) (t time.Time, ok bool) {
	if len(text) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	// FormatDate(ParseDate(s)) must give back s.
	if t.Format(DateLayout) != text {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate formats t as dd/MM/yyyy. It is the exact inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an HH:mm clock time into an offset from midnight.
// Both fields must be two digits; hour is 00-23 and minute is 00-59.
func ParseClock(text string) (time.Duration, bool) {
	if len(text) != len(ClockLayout) || text[2] != ':' {
		return 0, false
	}
	hour, ok := twoDigits(text[0:2])
	if !ok || hour > 23 {
		return 0, false
	}
	minute, ok := twoDigits(text[3:5])
	if !ok || minute > 59 {
		return 0, false
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, true
}

// FormatClock formats an offset from midnight as HH:mm.
// Offsets outside a single day wrap around.
func FormatClock(d time.Duration) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(ClockLayout)
}

// CombineDateAndTime folds an optional clock time onto a dd/MM/yyyy date.
//
// An empty timeText is treated as midnight. That default exists for ordering
// only and must never be shown to the user as a time. ok is false when the
// date does not parse or when a non-empty timeText does not parse.
func CombineDateAndTime(dateText, timeText string) (time.Time, bool) {
	day, ok := ParseDate(dateText)
	if !ok {
		return time.Time{}, false
	}
	if timeText == "" {
		return day, true
	}
	offset, ok := ParseClock(timeText)
	if !ok {
		return time.Time{}, false
	}
	return day.Add(offset), true
}

// DaysBetweenInclusive returns the number of calendar days from start to end,
// counting both endpoints, so a same-day range is 1.
// It returns 0 when either endpoint is unknown (nil) or end is before start.
func DaysBetweenInclusive(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	s := truncateToDay(*start)
	e := truncateToDay(*end)
	if e.Before(s) {
		return 0
	}
	// Dates are UTC so every day is exactly 24h long.
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// DaySpan is DaysBetweenInclusive over dd/MM/yyyy text.
// An empty endText means the range ends on the start date.
func DaySpan(startText, endText string) int {
	if endText == "" {
		endText = startText
	}
	return DaysBetweenInclusive(parsedPtr(startText), parsedPtr(endText))
}

func parsedPtr(text string) *time.Time {
	t, ok := ParseDate(text)
	if !ok {
		return nil
	}
	return &t
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

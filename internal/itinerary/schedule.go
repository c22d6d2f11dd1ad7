// Package itinerary turns a flat collection of activities into a day-by-day
// itinerary: grouped by start date, ordered within each day, and annotated
// with time conflicts and durations.
//
// All functions are pure. They never modify their input and never fail:
// activities whose dates or times cannot be parsed are either reported
// (GroupByDay) or treated as unknown (OrderDay, FindConflicts, TotalDuration).
package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/waypoint/internal/datetime"
	"github.com/pkordes/waypoint/internal/domain"
)

// Conflict is a pair of positions in an ordered day whose time ranges overlap.
// First is always Second-1.
type Conflict struct {
	First  int
	Second int
}

// StartInstant returns the activity's start date and time as an instant.
// A missing start time counts as midnight.
func StartInstant(a domain.Activity) (time.Time, bool) {
	return datetime.CombineDateAndTime(a.StartDate, a.StartTime)
}

// EndInstant returns the activity's end date and time as an instant.
// A missing end date falls back to the start date and a missing end time
// counts as midnight.
func EndInstant(a domain.Activity) (time.Time, bool) {
	return datetime.CombineDateAndTime(a.EffectiveEndDate(), a.EndTime)
}

type ordered struct {
	activity domain.Activity
	start    time.Time
	ok       bool
}

// OrderDay returns the activities stably sorted by start instant, earliest
// first. Activities with equal start instants keep their input order, and
// activities whose start instant is unknown go last, also in input order.
// The input slice is not modified.
func OrderDay(activities []domain.Activity) []domain.Activity {
	items := make([]ordered, len(activities))
	for i, a := range activities {
		start, ok := StartInstant(a)
		items[i] = ordered{activity: a, start: start, ok: ok}
	}

	slices.SortStableFunc(items, func(x, y ordered) int {
		switch {
		case x.ok && y.ok:
			return x.start.Compare(y.start)
		case x.ok:
			return -1
		case y.ok:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.Activity, len(items))
	for i, it := range items {
		out[i] = it.activity
	}
	return out
}

// FindConflicts scans an ordered day (see OrderDay) and reports every pair of
// neighbours where the earlier activity ends strictly after the later one
// starts. Touching ranges (10:00-11:00 then 11:00-12:00) do not conflict.
//
// Only adjacent pairs are compared, so the scan is a single linear pass.
// Pairs where either instant is unknown are skipped.
func FindConflicts(ordered []domain.Activity) []Conflict {
	var conflicts []Conflict
	for i := 0; i+1 < len(ordered); i++ {
		end, ok := EndInstant(ordered[i])
		if !ok {
			continue
		}
		nextStart, ok := StartInstant(ordered[i+1])
		if !ok {
			continue
		}
		if end.After(nextStart) {
			conflicts = append(conflicts, Conflict{First: i, Second: i + 1})
		}
	}
	return conflicts
}

// Duration returns the elapsed time of a single activity.
// It is zero when either instant is unknown or the end precedes the start.
func Duration(a domain.Activity) time.Duration {
	start, ok := StartInstant(a)
	if !ok {
		return 0
	}
	end, ok := EndInstant(a)
	if !ok || end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// TotalDuration sums Duration over all activities.
func TotalDuration(activities []domain.Activity) time.Duration {
	var total time.Duration
	for _, a := range activities {
		total += Duration(a)
	}
	return total
}

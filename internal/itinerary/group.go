package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/waypoint/internal/datetime"
	"github.com/pkordes/waypoint/internal/domain"
)

// DaySchedule is one calendar day of an itinerary: the activities that start
// on Date, ordered by OrderDay.
type DaySchedule struct {
	Date       time.Time
	Activities []domain.Activity
}

// Label returns the day formatted as dd/MM/yyyy.
func (d DaySchedule) Label() string {
	return datetime.FormatDate(d.Date)
}

// Unscheduled is an activity GroupByDay could not place on a day.
// Index is its position in the input slice.
type Unscheduled struct {
	Index    int
	Activity domain.Activity
	Reason   string
}

// GroupByDay partitions activities into one DaySchedule per distinct start
// date. Days are returned in chronological order and activities within a day
// are ordered by OrderDay.
//
// Every activity with a parseable start date lands in exactly one day.
// Activities whose start date does not parse are left out of the days and
// returned as Unscheduled instead.
func GroupByDay(activities []domain.Activity) ([]DaySchedule, []Unscheduled) {
	var (
		days        []DaySchedule
		unscheduled []Unscheduled
		byDate      = make(map[string]int)
	)

	for i, a := range activities {
		day, ok := datetime.ParseDate(a.StartDate)
		if !ok {
			unscheduled = append(unscheduled, Unscheduled{
				Index:    i,
				Activity: a,
				Reason:   "start date " + quoteOrEmpty(a.StartDate) + " is not a dd/MM/yyyy date",
			})
			continue
		}

		// a.StartDate parsed, so it is already the canonical key for the day.
		idx, seen := byDate[a.StartDate]
		if !seen {
			idx = len(days)
			byDate[a.StartDate] = idx
			days = append(days, DaySchedule{Date: day})
		}
		days[idx].Activities = append(days[idx].Activities, a)
	}

	slices.SortFunc(days, func(x, y DaySchedule) int {
		return x.Date.Compare(y.Date)
	})
	for i := range days {
		days[i].Activities = OrderDay(days[i].Activities)
	}

	return days, unscheduled
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return `"` + s + `"`
}

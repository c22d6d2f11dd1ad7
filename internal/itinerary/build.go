package itinerary

import (
	"time"

	"github.com/pkordes/waypoint/internal/datetime"
	"github.com/pkordes/waypoint/internal/domain"
)

// Day is a DaySchedule annotated for display.
type Day struct {
	DaySchedule
	Conflicts []Conflict
	Duration  time.Duration
}

// Itinerary is the grouped, ordered, conflict-annotated view of a trip.
type Itinerary struct {
	Days        []Day
	Unscheduled []Unscheduled

	// Total is the summed duration of every scheduled activity.
	Total time.Duration

	// Span is the number of calendar days from the first scheduled day to
	// the latest end date, inclusive. Zero when nothing is scheduled.
	Span int
}

// Build groups activities by day and annotates each day with its conflicts
// and total duration.
func Build(activities []domain.Activity) Itinerary {
	schedules, unscheduled := GroupByDay(activities)

	it := Itinerary{
		Days:        make([]Day, 0, len(schedules)),
		Unscheduled: unscheduled,
	}

	var first, last *time.Time
	for _, ds := range schedules {
		d := Day{
			DaySchedule: ds,
			Conflicts:   FindConflicts(ds.Activities),
			Duration:    TotalDuration(ds.Activities),
		}
		it.Days = append(it.Days, d)
		it.Total += d.Duration

		if first == nil {
			date := ds.Date
			first = &date
		}
		for _, a := range ds.Activities {
			end, ok := datetime.ParseDate(a.EffectiveEndDate())
			if !ok {
				end = ds.Date
			}
			if last == nil || end.After(*last) {
				last = &end
			}
		}
	}

	it.Span = datetime.DaysBetweenInclusive(first, last)
	return it
}

// ConflictCount returns the number of conflicts across all days.
func (it Itinerary) ConflictCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Conflicts)
	}
	return n
}

package itinerary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/itinerary"
)

// act builds an activity whose place name doubles as a label in assertions.
func act(name, date, start, end string) domain.Activity {
	return domain.Activity{
		Category:  domain.CategoryLeisure,
		Place:     domain.Place{Name: name},
		StartDate: date,
		StartTime: start,
		EndTime:   end,
	}
}

func names(activities []domain.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Place.Name
	}
	return out
}

// ---- GroupByDay ------------------------------------------------------------

func TestGroupByDay_ChronologicalKeys(t *testing.T) {
	// Lexical order of these strings would be 02/01, 10/12, 31/01.
	input := []domain.Activity{
		act("dec", "10/12/2024", "09:00", "10:00"),
		act("jan31", "31/01/2025", "09:00", "10:00"),
		act("jan2", "02/01/2025", "09:00", "10:00"),
	}

	days, unscheduled := itinerary.GroupByDay(input)

	require.Empty(t, unscheduled)
	require.Len(t, days, 3)
	assert.Equal(t, "10/12/2024", days[0].Label())
	assert.Equal(t, "02/01/2025", days[1].Label())
	assert.Equal(t, "31/01/2025", days[2].Label())
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Date.Before(days[i].Date), "keys must be strictly increasing")
	}
}

func TestGroupByDay_Partition(t *testing.T) {
	input := []domain.Activity{
		act("a", "01/06/2025", "12:00", "13:00"),
		act("b", "02/06/2025", "08:00", "09:00"),
		act("bad", "31/13/2024", "08:00", "09:00"),
		act("c", "01/06/2025", "09:00", "10:00"),
		act("empty", "", "", ""),
		act("d", "02/06/2025", "07:00", "08:00"),
	}

	days, unscheduled := itinerary.GroupByDay(input)

	seen := map[string]int{}
	for _, d := range days {
		for _, a := range d.Activities {
			seen[a.Place.Name]++
			assert.Equal(t, d.Label(), a.StartDate, "activity grouped under its start date")
		}
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, seen)

	require.Len(t, unscheduled, 2)
	assert.Equal(t, 2, unscheduled[0].Index)
	assert.Equal(t, "bad", unscheduled[0].Activity.Place.Name)
	assert.Contains(t, unscheduled[0].Reason, "31/13/2024")
	assert.Equal(t, 4, unscheduled[1].Index)
}

func TestGroupByDay_OrdersWithinDay(t *testing.T) {
	input := []domain.Activity{
		act("late", "01/06/2025", "18:00", "19:00"),
		act("early", "01/06/2025", "08:00", "09:00"),
	}

	days, _ := itinerary.GroupByDay(input)

	require.Len(t, days, 1)
	assert.Equal(t, []string{"early", "late"}, names(days[0].Activities))
}

func TestGroupByDay_Empty(t *testing.T) {
	days, unscheduled := itinerary.GroupByDay(nil)
	assert.Empty(t, days)
	assert.Empty(t, unscheduled)
}

// ---- OrderDay --------------------------------------------------------------

func TestOrderDay_StableAndIdempotent(t *testing.T) {
	input := []domain.Activity{
		act("x1", "01/06/2025", "10:00", "11:00"),
		act("y", "01/06/2025", "09:00", "10:00"),
		act("x2", "01/06/2025", "10:00", "10:30"),
		act("notime", "01/06/2025", "", ""),
		act("x3", "01/06/2025", "10:00", "12:00"),
	}

	once := itinerary.OrderDay(input)
	twice := itinerary.OrderDay(once)

	assert.Equal(t, []string{"notime", "y", "x1", "x2", "x3"}, names(once))
	assert.Equal(t, once, twice)
	assert.Equal(t, "x1", input[0].Place.Name, "input must not be reordered")
}

func TestOrderDay_UnknownStartGoesLast(t *testing.T) {
	input := []domain.Activity{
		act("bad1", "01/06/2025", "9am", ""),
		act("ok", "01/06/2025", "23:00", ""),
		act("bad2", "garbage", "", ""),
	}

	got := itinerary.OrderDay(input)

	assert.Equal(t, []string{"ok", "bad1", "bad2"}, names(got))
}

// ---- FindConflicts ---------------------------------------------------------

func TestFindConflicts_Overlap(t *testing.T) {
	day := itinerary.OrderDay([]domain.Activity{
		act("a", "01/06/2025", "10:00", "12:00"),
		act("b", "01/06/2025", "11:00", "13:00"),
	})

	got := itinerary.FindConflicts(day)

	assert.Equal(t, []itinerary.Conflict{{First: 0, Second: 1}}, got)
}

func TestFindConflicts_TouchingIsNotConflict(t *testing.T) {
	day := itinerary.OrderDay([]domain.Activity{
		act("a", "01/06/2025", "10:00", "11:00"),
		act("b", "01/06/2025", "11:00", "12:00"),
	})

	assert.Empty(t, itinerary.FindConflicts(day))
}

func TestFindConflicts_AdjacentOnly(t *testing.T) {
	// a overlaps b, b does not overlap c, a would overlap c but they are not
	// neighbours, so only (0,1) is reported.
	day := itinerary.OrderDay([]domain.Activity{
		act("a", "01/06/2025", "09:00", "17:00"),
		act("b", "01/06/2025", "10:00", "11:00"),
		act("c", "01/06/2025", "12:00", "13:00"),
	})

	assert.Equal(t, []itinerary.Conflict{{First: 0, Second: 1}}, itinerary.FindConflicts(day))
}

func TestFindConflicts_MatchesAdjacentRule(t *testing.T) {
	day := itinerary.OrderDay([]domain.Activity{
		act("a", "01/06/2025", "08:00", "09:30"),
		act("b", "01/06/2025", "09:00", "10:00"),
		act("c", "01/06/2025", "10:00", "11:00"),
		act("d", "01/06/2025", "10:30", "12:00"),
		act("e", "01/06/2025", "13:00", "14:00"),
	})

	got := itinerary.FindConflicts(day)

	var want []itinerary.Conflict
	for i := 0; i+1 < len(day); i++ {
		end, _ := itinerary.EndInstant(day[i])
		start, _ := itinerary.StartInstant(day[i+1])
		if end.After(start) {
			want = append(want, itinerary.Conflict{First: i, Second: i + 1})
		}
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 2)
}

func TestFindConflicts_MultiDayEndDate(t *testing.T) {
	hotel := act("hotel", "01/06/2025", "15:00", "11:00")
	hotel.EndDate = "03/06/2025"
	dinner := act("dinner", "01/06/2025", "19:00", "21:00")

	got := itinerary.FindConflicts(itinerary.OrderDay([]domain.Activity{hotel, dinner}))

	assert.Len(t, got, 1, "a stay spanning days overlaps the evening that follows")
}

func TestFindConflicts_UnknownInstantsSkipped(t *testing.T) {
	day := []domain.Activity{
		act("a", "01/06/2025", "10:00", "oops"),
		act("b", "01/06/2025", "10:30", "11:00"),
	}

	assert.Empty(t, itinerary.FindConflicts(day))
}

// ---- TotalDuration ---------------------------------------------------------

func TestTotalDuration(t *testing.T) {
	overnight := act("train", "01/06/2025", "22:00", "06:30")
	overnight.EndDate = "02/06/2025"

	got := itinerary.TotalDuration([]domain.Activity{
		act("a", "01/06/2025", "10:00", "11:30"),
		overnight,
		act("backwards", "01/06/2025", "15:00", "14:00"), // clamped to zero
		act("unknown", "nope", "10:00", "11:00"),          // contributes zero
	})

	assert.Equal(t, 90*time.Minute+8*time.Hour+30*time.Minute, got)
}

func TestDuration_NeverNegative(t *testing.T) {
	assert.Equal(t, time.Duration(0), itinerary.Duration(act("x", "01/06/2025", "12:00", "")))
}

// ---- Build -----------------------------------------------------------------

func TestBuild(t *testing.T) {
	hotel := act("hotel", "01/06/2025", "15:00", "11:00")
	hotel.EndDate = "04/06/2025"

	it := itinerary.Build([]domain.Activity{
		act("museum", "02/06/2025", "10:00", "12:00"),
		act("lunch", "02/06/2025", "11:30", "13:00"),
		hotel,
		act("lost", "", "", ""),
	})

	require.Len(t, it.Days, 2)
	assert.Equal(t, "01/06/2025", it.Days[0].Label())
	assert.Equal(t, "02/06/2025", it.Days[1].Label())
	assert.Equal(t, []itinerary.Conflict{{First: 0, Second: 1}}, it.Days[1].Conflicts)
	assert.Equal(t, 3*time.Hour+30*time.Minute, it.Days[1].Duration)
	assert.Equal(t, 1, it.ConflictCount())
	assert.Len(t, it.Unscheduled, 1)
	assert.Equal(t, 4, it.Span)
	assert.Equal(t, it.Days[0].Duration+it.Days[1].Duration, it.Total)
}

func TestBuild_Empty(t *testing.T) {
	it := itinerary.Build(nil)

	assert.Empty(t, it.Days)
	assert.Zero(t, it.Span)
	assert.Zero(t, it.Total)
}

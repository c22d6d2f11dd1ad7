package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/itinerary"
)

func newItineraryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "itinerary [FILE]",
		Short: "Group activities into an ordered day-by-day itinerary",
		Long: `Reads a JSON array of activities from FILE, or stdin when FILE is omitted
or "-", and prints them grouped by start day, ordered within each day, with
overlapping neighbours flagged. Dates are dd/MM/yyyy and times HH:mm.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var activities []domain.Activity
			if err := json.NewDecoder(in).Decode(&activities); err != nil {
				return fmt.Errorf("decode activities: %w", err)
			}

			it := itinerary.Build(activities)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toJSON(it))
			}
			printItinerary(cmd.OutOrStdout(), it)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

type dayJSON struct {
	Date            string            `json:"date"`
	Activities      []domain.Activity `json:"activities"`
	Conflicts       [][2]int          `json:"conflicts"`
	DurationMinutes int64             `json:"duration_minutes"`
}

type unscheduledJSON struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type itineraryJSON struct {
	Days         []dayJSON         `json:"days"`
	Unscheduled  []unscheduledJSON `json:"unscheduled"`
	TotalMinutes int64             `json:"total_minutes"`
	SpanDays     int               `json:"span_days"`
}

func toJSON(it itinerary.Itinerary) itineraryJSON {
	out := itineraryJSON{
		Days:         []dayJSON{},
		Unscheduled:  []unscheduledJSON{},
		TotalMinutes: int64(it.Total.Minutes()),
		SpanDays:     it.Span,
	}
	for _, d := range it.Days {
		day := dayJSON{
			Date:            d.Label(),
			Activities:      d.Activities,
			Conflicts:       [][2]int{},
			DurationMinutes: int64(d.Duration.Minutes()),
		}
		for _, c := range d.Conflicts {
			day.Conflicts = append(day.Conflicts, [2]int{c.First, c.Second})
		}
		out.Days = append(out.Days, day)
	}
	for _, u := range it.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, unscheduledJSON{Index: u.Index, Reason: u.Reason})
	}
	return out
}

func printItinerary(w io.Writer, it itinerary.Itinerary) {
	for _, d := range it.Days {
		fmt.Fprintf(w, "%s  (%s)\n", d.Label(), d.Duration)
		conflicting := make(map[int]bool)
		for _, c := range d.Conflicts {
			conflicting[c.First], conflicting[c.Second] = true, true
		}
		for i, a := range d.Activities {
			mark := " "
			if conflicting[i] {
				mark = "!"
			}
			fmt.Fprintf(w, "%s %-11s %-14s %s\n", mark, timeRange(a), "["+string(a.Category)+"]", a.Place.Name)
		}
	}
	for _, u := range it.Unscheduled {
		fmt.Fprintf(w, "unscheduled #%d %s: %s\n", u.Index, u.Activity.Place.Name, u.Reason)
	}
	fmt.Fprintf(w, "%d days, %s scheduled, %d conflicts\n", it.Span, it.Total, it.ConflictCount())
}

func timeRange(a domain.Activity) string {
	switch {
	case a.StartTime == "" && a.EndTime == "":
		return "all day"
	case a.EndTime == "":
		return a.StartTime
	default:
		return strings.TrimSpace(a.StartTime + "-" + a.EndTime)
	}
}

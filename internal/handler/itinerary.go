package handler

import (
	"net/http"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/itinerary"
	"github.com/pkordes/waypoint/internal/service"
)

// Itinerary is the body of GET /trips/{tripId}/itinerary.
type Itinerary struct {
	Trip          Trip              `json:"trip"`
	Days          []ItineraryDay    `json:"days"`
	Unscheduled   []UnscheduledItem `json:"unscheduled"`
	TotalMinutes  int64             `json:"total_minutes"`
	SpanDays      int               `json:"span_days"`
	ConflictCount int               `json:"conflict_count"`
}

// ItineraryDay is one calendar day. Conflicts index into Activities.
type ItineraryDay struct {
	Date            string            `json:"date"`
	Activities      []domain.Activity `json:"activities"`
	Conflicts       []ConflictPair    `json:"conflicts"`
	DurationMinutes int64             `json:"duration_minutes"`
}

// ConflictPair names two adjacent activities of a day whose times overlap.
type ConflictPair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// UnscheduledItem is an activity left out of the days, with the reason.
type UnscheduledItem struct {
	Index    int             `json:"index"`
	Activity domain.Activity `json:"activity"`
	Reason   string          `json:"reason"`
}

// GetItinerary handles GET /trips/{tripId}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	ti, err := s.itinerary.Build(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(ti))
}

func itineraryToResponse(ti service.TripItinerary) Itinerary {
	resp := Itinerary{
		Trip:          tripToResponse(ti.Trip),
		Days:          make([]ItineraryDay, 0, len(ti.Days)),
		Unscheduled:   make([]UnscheduledItem, 0, len(ti.Unscheduled)),
		TotalMinutes:  int64(ti.Total.Minutes()),
		SpanDays:      ti.Span,
		ConflictCount: ti.ConflictCount(),
	}
	for _, d := range ti.Days {
		resp.Days = append(resp.Days, dayToResponse(d))
	}
	for _, u := range ti.Unscheduled {
		resp.Unscheduled = append(resp.Unscheduled, UnscheduledItem{
			Index:    u.Index,
			Activity: u.Activity,
			Reason:   u.Reason,
		})
	}
	return resp
}

func dayToResponse(d itinerary.Day) ItineraryDay {
	day := ItineraryDay{
		Date:            d.Label(),
		Activities:      d.Activities,
		Conflicts:       make([]ConflictPair, 0, len(d.Conflicts)),
		DurationMinutes: int64(d.Duration.Minutes()),
	}
	for _, c := range d.Conflicts {
		day.Conflicts = append(day.Conflicts, ConflictPair{First: c.First, Second: c.Second})
	}
	return day
}

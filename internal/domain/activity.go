package domain

import (
	"time"

	"github.com/google/uuid"
)

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the real-world location an activity is attached to, usually
// picked from a place search result.
// Location is nil when the place was entered by hand without coordinates.
type Place struct {
	ProviderID string    `json:"provider_id,omitempty"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	Location   *GeoPoint `json:"location,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
}

// Activity is a dated, timed entry in a trip.
//
// Dates and times are kept exactly as the user entered them, in the locale
// formats dd/MM/yyyy and HH:mm, because they may be incomplete or malformed
// while the user is still typing. Use package datetime to turn them into
// comparable instants.
//
// ID is the zero UUID until the activity has been persisted.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Category  Category  `json:"category"`
	Place     Place     `json:"place"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date,omitempty"` // empty for a same-day activity
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveEndDate returns EndDate, or StartDate when no end date was given.
func (a Activity) EffectiveEndDate() string {
	if a.EndDate == "" {
		return a.StartDate
	}
	return a.EndDate
}

// Package domain contains the core data types for the Waypoint travel planner.
// This package depends only on uuid and is imported by every other internal
// package (repo, service, itinerary, places, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate. A trip exclusively owns its activities:
// deleting a trip deletes every activity attached to it.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil while the trip is open-ended
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

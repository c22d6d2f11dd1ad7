// Package places is the gateway to the external place search provider.
//
// It offers three search modes (autocomplete, text search, nearby search)
// that share one validation step and one transport pipeline. Validation
// errors wrap domain.ErrValidation and are returned before any network
// access; transport failures are returned as *Error.
package places

import (
	"strings"

	"github.com/pkordes/waypoint/internal/domain"
)

// Mode names a search mode. It labels metrics and log lines.
type Mode string

const (
	ModeAutocomplete Mode = "autocomplete"
	ModeText         Mode = "text"
	ModeNearby       Mode = "nearby"
)

// RankPreference orders nearby results.
type RankPreference string

const (
	RankDistance   RankPreference = "DISTANCE"
	RankPopularity RankPreference = "POPULARITY"
)

const (
	// MinInputLength is the minimum number of characters, after trimming,
	// of an autocomplete input or text query.
	MinInputLength = 2

	// MaxRadiusMeters bounds every search circle.
	MaxRadiusMeters = 50000

	// MaxResults caps the result count a caller may request.
	MaxResults = 20
)

// LatLng is a coordinate as sent to the provider.
type LatLng struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Circle is a search area: a center and a radius in meters.
// Center is a pointer so a missing center can be told apart from 0,0.
type Circle struct {
	Center *LatLng `json:"center" validate:"required"`
	Radius float64 `json:"radius" validate:"gt=0,lte=50000"`
}

// AutocompleteRequest asks for suggestions while the user is typing.
type AutocompleteRequest struct {
	Input string `json:"input"`

	// Bias, when set, prefers results inside the circle without excluding others.
	Bias *Circle `json:"bias" validate:"omitempty"`

	// Types restricts suggestions to these primary place types.
	Types []string `json:"types" validate:"max=5,dive,placetype"`

	// SessionToken groups the keystroke-driven calls of one search session
	// into a single unit on the provider side.
	SessionToken string `json:"session_token"`

	Limit int `json:"limit" validate:"gte=0,lte=20"`
}

// TextSearchRequest is a free-text search for places.
type TextSearchRequest struct {
	Query string   `json:"query"`
	Bias  *Circle  `json:"bias" validate:"omitempty"`
	Types []string `json:"types" validate:"max=5,dive,placetype"`
	Limit int      `json:"limit" validate:"gte=0,lte=20"`
}

// NearbyRequest finds places of one type inside a circle. It has no text query.
type NearbyRequest struct {
	Center *LatLng        `json:"center" validate:"required"`
	Radius float64        `json:"radius" validate:"gt=0,lte=50000"`
	Type   string         `json:"type" validate:"required,placetype"`
	Rank   RankPreference `json:"rank" validate:"omitempty,oneof=DISTANCE POPULARITY"`
	Limit  int            `json:"limit" validate:"gte=0,lte=20"`
}

// Suggestion is one autocomplete prediction.
type Suggestion struct {
	PlaceID        string   `json:"place_id"`
	Text           string   `json:"text"`
	MainText       string   `json:"main_text,omitempty"`
	SecondaryText  string   `json:"secondary_text,omitempty"`
	Types          []string `json:"types,omitempty"`
	DistanceMeters int      `json:"distance_meters,omitempty"`
}

// Place is a full place result from text or nearby search.
type Place struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address,omitempty"`
	Location    *domain.GeoPoint `json:"location,omitempty"`
	Types       []string         `json:"types,omitempty"`
	PrimaryType string           `json:"primary_type,omitempty"`
	Rating      float64          `json:"rating,omitempty"`
	RatingCount int              `json:"rating_count,omitempty"`
}

// ToDomain converts a search result into the place reference stored on an
// activity. Provider types become the place's category tags.
func (p Place) ToDomain() domain.Place {
	return domain.Place{
		ProviderID: p.ID,
		Name:       p.Name,
		Address:    p.Address,
		Location:   p.Location,
		Tags:       p.Types,
	}
}

// Suggestion presents a full place in the shape of an autocomplete suggestion
// so a search session can show both kinds of result in one list.
func (p Place) Suggestion() Suggestion {
	text := p.Name
	if p.Address != "" {
		text = p.Name + ", " + p.Address
	}
	return Suggestion{
		PlaceID:       p.ID,
		Text:          text,
		MainText:      p.Name,
		SecondaryText: p.Address,
		Types:         p.Types,
	}
}

// NormalizeInput trims surrounding whitespace from user input.
func NormalizeInput(s string) string {
	return strings.TrimSpace(s)
}

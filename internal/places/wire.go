package places

import "github.com/pkordes/waypoint/internal/domain"

// Request and response bodies of the provider's Places API.

type latLngJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circleJSON struct {
	Center latLngJSON `json:"center"`
	Radius float64    `json:"radius"`
}

type areaJSON struct {
	Circle circleJSON `json:"circle"`
}

type autocompleteBody struct {
	Input                string    `json:"input"`
	LocationBias         *areaJSON `json:"locationBias,omitempty"`
	IncludedPrimaryTypes []string  `json:"includedPrimaryTypes,omitempty"`
	SessionToken         string    `json:"sessionToken,omitempty"`
}

type textSearchBody struct {
	TextQuery     string    `json:"textQuery"`
	LocationBias  *areaJSON `json:"locationBias,omitempty"`
	IncludedTypes []string  `json:"includedTypes,omitempty"`
	PageSize      int       `json:"pageSize,omitempty"`
}

type nearbyBody struct {
	IncludedPrimaryTypes []string `json:"includedPrimaryTypes"`
	LocationRestriction  areaJSON `json:"locationRestriction"`
	RankPreference       string   `json:"rankPreference"`
	MaxResultCount       int      `json:"maxResultCount,omitempty"`
}

type textJSON struct {
	Text string `json:"text"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction *struct {
			PlaceID          string   `json:"placeId"`
			Text             textJSON `json:"text"`
			StructuredFormat struct {
				MainText      textJSON `json:"mainText"`
				SecondaryText textJSON `json:"secondaryText"`
			} `json:"structuredFormat"`
			Types          []string `json:"types"`
			DistanceMeters int      `json:"distanceMeters"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

type placeJSON struct {
	ID               string      `json:"id"`
	DisplayName      textJSON    `json:"displayName"`
	FormattedAddress string      `json:"formattedAddress"`
	Location         *latLngJSON `json:"location"`
	Types            []string    `json:"types"`
	PrimaryType      string      `json:"primaryType"`
	Rating           float64     `json:"rating"`
	UserRatingCount  int         `json:"userRatingCount"`
}

type placesResponse struct {
	Places []placeJSON `json:"places"`
}

func areaOf(c *Circle) *areaJSON {
	if c == nil {
		return nil
	}
	return &areaJSON{Circle: circleJSON{
		Center: latLngJSON{Latitude: c.Center.Latitude, Longitude: c.Center.Longitude},
		Radius: c.Radius,
	}}
}

func (r autocompleteResponse) suggestions() []Suggestion {
	out := make([]Suggestion, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		p := s.PlacePrediction
		if p == nil {
			// Query predictions carry no place and cannot be attached to an activity.
			continue
		}
		out = append(out, Suggestion{
			PlaceID:        p.PlaceID,
			Text:           p.Text.Text,
			MainText:       p.StructuredFormat.MainText.Text,
			SecondaryText:  p.StructuredFormat.SecondaryText.Text,
			Types:          p.Types,
			DistanceMeters: p.DistanceMeters,
		})
	}
	return out
}

func (r placesResponse) places() []Place {
	out := make([]Place, 0, len(r.Places))
	for _, p := range r.Places {
		place := Place{
			ID:          p.ID,
			Name:        p.DisplayName.Text,
			Address:     p.FormattedAddress,
			Types:       p.Types,
			PrimaryType: p.PrimaryType,
			Rating:      p.Rating,
			RatingCount: p.UserRatingCount,
		}
		if p.Location != nil {
			place.Location = &domain.GeoPoint{Latitude: p.Location.Latitude, Longitude: p.Location.Longitude}
		}
		out = append(out, place)
	}
	return out
}

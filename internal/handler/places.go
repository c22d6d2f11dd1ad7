package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/places"
)

// SuggestionList is the body of GET /places/autocomplete.
type SuggestionList struct {
	Data []places.Suggestion `json:"data"`
}

// PlaceList is the body of GET /places/search and GET /places/nearby.
type PlaceList struct {
	Data []places.Place `json:"data"`
}

// PlaceTypes is the body of GET /places/types.
type PlaceTypes struct {
	Category string   `json:"category,omitempty"`
	Types    []string `json:"types"`
}

// areaQuery is the lat/lng/radius triple shared by every search mode.
type areaQuery struct {
	Lat, Lng, Radius *float64
}

func bindArea(r *http.Request) (areaQuery, error) {
	var q areaQuery
	fields := []struct {
		name string
		dst  **float64
	}{{"lat", &q.Lat}, {"lng", &q.Lng}, {"radius", &q.Radius}}
	for _, f := range fields {
		if err := queryParam(r, f.name, f.dst); err != nil {
			return q, err
		}
	}
	if (q.Lat == nil) != (q.Lng == nil) {
		return q, errors.New("lat and lng must be given together")
	}
	return q, nil
}

func (q areaQuery) center() *places.LatLng {
	if q.Lat == nil {
		return nil
	}
	return &places.LatLng{Latitude: *q.Lat, Longitude: *q.Lng}
}

func (q areaQuery) radius() float64 {
	if q.Radius == nil {
		return 0
	}
	return *q.Radius
}

// circle returns nil when no part of the area was given.
func (q areaQuery) circle() *places.Circle {
	if q.Lat == nil && q.Radius == nil {
		return nil
	}
	return &places.Circle{Center: q.center(), Radius: q.radius()}
}

// bindTypes reads ?types=; when absent, ?category= picks the types mapped
// to that activity category.
func bindTypes(r *http.Request) ([]string, error) {
	var types *[]string
	if err := queryParam(r, "types", &types); err != nil {
		return nil, err
	}
	if types != nil && len(*types) > 0 {
		return *types, nil
	}
	var category *string
	if err := queryParam(r, "category", &category); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	c, err := domain.ParseCategory(*category)
	if err != nil {
		return nil, err
	}
	return places.TypesForCategory(c), nil
}

func bindString(r *http.Request, name string) (string, error) {
	var v *string
	if err := queryParam(r, name, &v); err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func bindInt(r *http.Request, name string) (int, error) {
	var v *int
	if err := queryParam(r, name, &v); err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// Autocomplete handles GET /places/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var (
		req places.AutocompleteRequest
		err error
	)
	if req.Input, err = bindString(r, "input"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.SessionToken, err = bindString(r, "session_token"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.Limit, err = bindInt(r, "limit"); err != nil {
		badRequest(w, err.Error())
		return
	}
	area, err := bindArea(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	req.Bias = area.circle()
	if req.Types, err = bindTypes(r); err != nil {
		writePlacesError(w, r, err)
		return
	}

	results, err := s.places.Autocomplete(r.Context(), req)
	if err != nil {
		writePlacesError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionList{Data: nonNil(results)})
}

// TextSearch handles GET /places/search.
func (s *Server) TextSearch(w http.ResponseWriter, r *http.Request) {
	var (
		req places.TextSearchRequest
		err error
	)
	if req.Query, err = bindString(r, "query"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.Limit, err = bindInt(r, "limit"); err != nil {
		badRequest(w, err.Error())
		return
	}
	area, err := bindArea(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	req.Bias = area.circle()
	if req.Types, err = bindTypes(r); err != nil {
		writePlacesError(w, r, err)
		return
	}

	results, err := s.places.TextSearch(r.Context(), req)
	if err != nil {
		writePlacesError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PlaceList{Data: nonNil(results)})
}

// NearbySearch handles GET /places/nearby.
func (s *Server) NearbySearch(w http.ResponseWriter, r *http.Request) {
	var (
		req  places.NearbyRequest
		rank string
		err  error
	)
	if req.Type, err = bindString(r, "type"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if rank, err = bindString(r, "rank"); err != nil {
		badRequest(w, err.Error())
		return
	}
	req.Rank = places.RankPreference(rank)
	if req.Limit, err = bindInt(r, "limit"); err != nil {
		badRequest(w, err.Error())
		return
	}
	area, err := bindArea(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	req.Center = area.center()
	req.Radius = area.radius()

	results, err := s.places.NearbySearch(r.Context(), req)
	if err != nil {
		writePlacesError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PlaceList{Data: nonNil(results)})
}

// ListPlaceTypes handles GET /places/types. With ?category= it returns the
// types used to filter searches for that category, otherwise every known type.
func (s *Server) ListPlaceTypes(w http.ResponseWriter, r *http.Request) {
	category, err := bindString(r, "category")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if category == "" {
		writeJSON(w, http.StatusOK, PlaceTypes{Types: places.KnownTypes()})
		return
	}

	c, err := domain.ParseCategory(category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, PlaceTypes{Category: string(c), Types: nonNil(places.TypesForCategory(c))})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

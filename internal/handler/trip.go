package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/waypoint/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Name      string              `json:"name"`
	StartDate openapi_types.Date  `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
}

// Trip is the API representation of a trip.
type Trip struct {
	ID        openapi_types.UUID  `json:"id"`
	Name      string              `json:"name"`
	StartDate openapi_types.Date  `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBodyError(w, err)
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body))
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		badRequest(w, err.Error())
		return
	}

	result, err := s.trips.ListPaged(r.Context(), domain.NewPaginationParams(page, limit))
	if err != nil {
		internalError(w, r, err)
		return
	}

	data := make([]Trip, len(result.Items))
	for i, t := range result.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:    result.Page,
			Limit:   result.Limit,
			Total:   result.Total,
			HasMore: result.HasMore(),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBodyError(w, err)
		return
	}

	trip := requestToTrip(body)
	trip.ID = id
	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. Activities go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		Name:      body.Name,
		StartDate: body.StartDate.Time,
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		t.EndDate = &ed
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: openapi_types.Date{Time: t.StartDate},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	if t.EndDate != nil {
		ed := openapi_types.Date{Time: *t.EndDate}
		resp.EndDate = &ed
	}
	return resp
}

package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/waypoint/internal/domain"
)

// ActivityRequest is the body of POST and PUT on a trip's activities.
// Dates are dd/MM/yyyy and times HH:mm, as the user typed them.
type ActivityRequest struct {
	Category  string       `json:"category"`
	Place     domain.Place `json:"place"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date,omitempty"`
	StartTime string       `json:"start_time,omitempty"`
	EndTime   string       `json:"end_time,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

// ActivityList is the body of GET /trips/{tripId}/activities.
type ActivityList struct {
	Data []domain.Activity `json:"data"`
}

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body ActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBodyError(w, err)
		return
	}

	created, err := s.activities.Create(r.Context(), requestToActivity(tripID, body))
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListActivities handles GET /trips/{tripId}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	activities, err := s.activities.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ActivityList{Data: activities})
}

// GetActivity handles GET /trips/{tripId}/activities/{activityId}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	tripID, activityID, ok := activityPath(w, r)
	if !ok {
		return
	}

	a, err := s.activities.GetByID(r.Context(), tripID, activityID)
	if err != nil {
		writeServiceError(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// UpdateActivity handles PUT /trips/{tripId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, activityID, ok := activityPath(w, r)
	if !ok {
		return
	}
	var body ActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBodyError(w, err)
		return
	}

	a := requestToActivity(tripID, body)
	a.ID = activityID
	updated, err := s.activities.Update(r.Context(), a)
	if err != nil {
		writeServiceError(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /trips/{tripId}/activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID, activityID, ok := activityPath(w, r)
	if !ok {
		return
	}

	if err := s.activities.Delete(r.Context(), tripID, activityID); err != nil {
		writeServiceError(w, r, err, "activity not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activityPath binds both path IDs, answering 400 itself on failure.
func activityPath(w http.ResponseWriter, r *http.Request) (tripID, activityID openapi_types.UUID, ok bool) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, err.Error())
		return tripID, activityID, false
	}
	activityID, err = pathUUID(r, "activityId")
	if err != nil {
		badRequest(w, err.Error())
		return tripID, activityID, false
	}
	return tripID, activityID, true
}

func requestToActivity(tripID openapi_types.UUID, body ActivityRequest) domain.Activity {
	return domain.Activity{
		TripID:    tripID,
		Category:  domain.Category(body.Category),
		Place:     body.Place,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Notes:     body.Notes,
	}
}

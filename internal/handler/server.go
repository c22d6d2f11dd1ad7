// Package handler implements the HTTP handlers for the Waypoint API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go, places.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/places"
	"github.com/pkordes/waypoint/internal/service"
	"github.com/pkordes/waypoint/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the activity operations, all scoped by trip.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, tripID, activityID uuid.UUID) error
}

// ItineraryBuilder assembles the day-by-day view of a trip.
type ItineraryBuilder interface {
	Build(ctx context.Context, tripID uuid.UUID) (service.TripItinerary, error)
}

// PlaceSearcher is the place search gateway.
type PlaceSearcher interface {
	Autocomplete(ctx context.Context, req places.AutocompleteRequest) ([]places.Suggestion, error)
	TextSearch(ctx context.Context, req places.TextSearchRequest) ([]places.Place, error)
	NearbySearch(ctx context.Context, req places.NearbyRequest) ([]places.Place, error)
}

var (
	_ TripServicer     = (*service.TripService)(nil)
	_ ActivityServicer = (*service.ActivityService)(nil)
	_ ItineraryBuilder = (*service.ItineraryService)(nil)
	_ PlaceSearcher    = (*places.Gateway)(nil)
)

// Deps are the collaborators of a Server. A nil dependency leaves its routes
// unregistered, so tests can wire only what they exercise.
type Deps struct {
	Trips      TripServicer
	Activities ActivityServicer
	Itinerary  ItineraryBuilder
	Places     PlaceSearcher
}

// Server holds the handler dependencies.
type Server struct {
	trips      TripServicer
	activities ActivityServicer
	itinerary  ItineraryBuilder
	places     PlaceSearcher
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:      d.Trips,
		activities: d.Activities,
		itinerary:  d.Itinerary,
		places:     d.Places,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Register mounts every route on r. Global middleware is the caller's job.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveSpec)

	if s.trips != nil {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				if s.activities != nil {
					r.Route("/activities", func(r chi.Router) {
						r.Get("/", s.ListActivities)
						r.Post("/", s.CreateActivity)
						r.Get("/{activityId}", s.GetActivity)
						r.Put("/{activityId}", s.UpdateActivity)
						r.Delete("/{activityId}", s.DeleteActivity)
					})
				}
				if s.itinerary != nil {
					r.Get("/itinerary", s.GetItinerary)
				}
			})
		})
	}

	r.Get("/places/types", s.ListPlaceTypes)
	if s.places != nil {
		r.Get("/places/autocomplete", s.Autocomplete)
		r.Get("/places/search", s.TextSearch)
		r.Get("/places/nearby", s.NearbySearch)
	}
}

// Handler returns a bare chi router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func serveSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

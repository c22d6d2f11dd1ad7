package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/itinerary"
	"github.com/pkordes/waypoint/internal/repo"
)

// TripItinerary is a trip together with its day-by-day plan.
type TripItinerary struct {
	Trip domain.Trip
	itinerary.Itinerary
}

// ItineraryService assembles the itinerary view of a trip.
type ItineraryService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, activities repo.ActivityRepo) *ItineraryService {
	return &ItineraryService{trips: trips, activities: activities}
}

// Build loads a trip and its activities concurrently and groups the
// activities into days. Returns domain.ErrNotFound for an unknown trip.
func (s *ItineraryService) Build(ctx context.Context, tripID uuid.UUID) (TripItinerary, error) {
	var (
		trip       domain.Trip
		activities []domain.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trip, err = s.trips.GetByID(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = s.activities.ListByTripID(gctx, tripID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TripItinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}

	return TripItinerary{Trip: trip, Itinerary: itinerary.Build(activities)}, nil
}

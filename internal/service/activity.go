package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/waypoint/internal/datetime"
	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the trip repo because creating an activity requires its trip.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create checks that the trip exists, normalizes and validates the activity,
// then persists it.
// Returns domain.ErrNotFound for an unknown trip and domain.ErrValidation for
// bad input.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if _, err := s.trips.GetByID(ctx, a.TripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	a, err := normalizeActivity(a)
	if err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns one activity of a trip.
func (s *ActivityService) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	result, err := s.activities.GetByID(ctx, tripID, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns a trip's activities, never nil.
func (s *ActivityService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTripID: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update normalizes, validates and persists changes to an activity.
func (s *ActivityService) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	a, err := normalizeActivity(a)
	if err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes one activity of a trip.
func (s *ActivityService) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	if err := s.activities.Delete(ctx, tripID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// normalizeActivity trims text fields, canonicalizes the category and checks
// that the activity can be placed on an itinerary:
//   - category is one of domain.Categories
//   - place name is non-blank and coordinates, if any, are in range
//   - start date parses as dd/MM/yyyy; end date, if any, parses and is not earlier
//   - times, if any, parse as HH:mm
//   - the end instant is not before the start instant
func normalizeActivity(a domain.Activity) (domain.Activity, error) {
	cat, err := domain.ParseCategory(string(a.Category))
	if err != nil {
		return domain.Activity{}, err
	}
	a.Category = cat

	a.Place.Name = strings.TrimSpace(a.Place.Name)
	a.Place.Address = strings.TrimSpace(a.Place.Address)
	a.StartDate = strings.TrimSpace(a.StartDate)
	a.EndDate = strings.TrimSpace(a.EndDate)
	a.StartTime = strings.TrimSpace(a.StartTime)
	a.EndTime = strings.TrimSpace(a.EndTime)

	if a.Place.Name == "" {
		return domain.Activity{}, fmt.Errorf("%w: place.name is required", domain.ErrValidation)
	}
	if loc := a.Place.Location; loc != nil {
		if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
			return domain.Activity{}, fmt.Errorf("%w: place.location is out of range", domain.ErrValidation)
		}
	}

	start, ok := datetime.ParseDate(a.StartDate)
	if !ok {
		return domain.Activity{}, fmt.Errorf("%w: start_date must be a date in dd/MM/yyyy form", domain.ErrValidation)
	}
	if a.EndDate != "" {
		end, ok := datetime.ParseDate(a.EndDate)
		if !ok {
			return domain.Activity{}, fmt.Errorf("%w: end_date must be a date in dd/MM/yyyy form", domain.ErrValidation)
		}
		if end.Before(start) {
			return domain.Activity{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
		}
	}
	if _, ok := datetime.ParseClock(a.StartTime); a.StartTime != "" && !ok {
		return domain.Activity{}, fmt.Errorf("%w: start_time must be a time in HH:mm form", domain.ErrValidation)
	}
	if _, ok := datetime.ParseClock(a.EndTime); a.EndTime != "" && !ok {
		return domain.Activity{}, fmt.Errorf("%w: end_time must be a time in HH:mm form", domain.ErrValidation)
	}

	if a.StartTime != "" && a.EndTime != "" {
		from, _ := datetime.CombineDateAndTime(a.StartDate, a.StartTime)
		to, _ := datetime.CombineDateAndTime(a.EffectiveEndDate(), a.EndTime)
		if to.Before(from) {
			return domain.Activity{}, fmt.Errorf("%w: activity must not end before it starts", domain.ErrValidation)
		}
	}

	return a, nil
}

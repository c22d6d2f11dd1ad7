package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/waypoint/internal/domain"
)

// pgForeignKeyViolation is the SQLSTATE raised when trip_id names no trip.
const pgForeignKeyViolation = "23503"

// ActivityRepo persists activities. Every operation is scoped by trip so an
// activity can only be reached through the trip that owns it.
type ActivityRepo interface {
	// Create inserts an activity. Returns domain.ErrNotFound if the trip
	// does not exist.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID returns domain.ErrNotFound if the trip has no such activity.
	GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)

	// ListByTripID returns the trip's activities in creation order.
	// Chronological order is the itinerary's job, since dates are stored as text.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites every mutable field. Returns domain.ErrNotFound if
	// the trip has no such activity.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// Delete returns domain.ErrNotFound if the trip has no such activity.
	Delete(ctx context.Context, tripID, activityID uuid.UUID) error
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo returns an ActivityRepo running its queries on db.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `
	id, trip_id, category,
	place_provider_id, place_name, place_address, place_lat, place_lng, place_tags,
	start_date, end_date, start_time, end_time, notes,
	created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	q := `
		INSERT INTO activities (
			trip_id, category,
			place_provider_id, place_name, place_address, place_lat, place_lng, place_tags,
			start_date, end_date, start_time, end_time, notes)
		VALUES (
			@trip_id, @category,
			@place_provider_id, @place_name, @place_address, @place_lat, @place_lng, @place_tags,
			@start_date, @end_date, @start_time, @end_time, @notes)
		RETURNING` + activityColumns

	row := r.db.QueryRow(ctx, q, activityArgs(a))
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	q := `SELECT` + activityColumns + `
		FROM activities
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	q := `SELECT` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	activities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Activity, error) {
		return scanActivity(row)
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	q := `
		UPDATE activities
		SET category          = @category,
		    place_provider_id = @place_provider_id,
		    place_name        = @place_name,
		    place_address     = @place_address,
		    place_lat         = @place_lat,
		    place_lng         = @place_lng,
		    place_tags        = @place_tags,
		    start_date        = @start_date,
		    end_date          = @end_date,
		    start_time        = @start_time,
		    end_time          = @end_time,
		    notes             = @notes,
		    updated_at        = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING` + activityColumns

	args := activityArgs(a)
	args["id"] = a.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": activityID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	var lat, lng *float64
	if loc := a.Place.Location; loc != nil {
		lat, lng = &loc.Latitude, &loc.Longitude
	}
	tags := a.Place.Tags
	if tags == nil {
		tags = []string{}
	}
	return pgx.NamedArgs{
		"trip_id":           a.TripID,
		"category":          string(a.Category),
		"place_provider_id": a.Place.ProviderID,
		"place_name":        a.Place.Name,
		"place_address":     a.Place.Address,
		"place_lat":         lat,
		"place_lng":         lng,
		"place_tags":        tags,
		"start_date":        a.StartDate,
		"end_date":          a.EndDate,
		"start_time":        a.StartTime,
		"end_time":          a.EndTime,
		"notes":             a.Notes,
	}
}

// scanActivity maps an activities row. pgx.ErrNoRows becomes domain.ErrNotFound.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a        domain.Activity
		category string
		lat, lng *float64
	)

	err := s.Scan(
		&a.ID, &a.TripID, &category,
		&a.Place.ProviderID, &a.Place.Name, &a.Place.Address, &lat, &lng, &a.Place.Tags,
		&a.StartDate, &a.EndDate, &a.StartTime, &a.EndTime, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.Category = domain.Category(category)
	if lat != nil && lng != nil {
		a.Place.Location = &domain.GeoPoint{Latitude: *lat, Longitude: *lng}
	}
	if len(a.Place.Tags) == 0 {
		a.Place.Tags = nil
	}
	return a, nil
}

// mapWriteErr turns a missing parent trip into domain.ErrNotFound.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domain.ErrNotFound
	}
	return err
}

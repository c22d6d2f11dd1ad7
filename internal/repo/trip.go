// Package repo is the Postgres persistence layer for trips and activities.
// Each resource has an interface, used by the service layer, and a pgx
// implementation. Only SQL and row mapping live here.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/waypoint/internal/domain"
)

// db is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so tests can run a
// repo inside a transaction they roll back.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo persists trips.
type TripRepo interface {
	// Create inserts a trip and returns it with id and timestamps filled in.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID returns domain.ErrNotFound if no trip has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips, latest departure first.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of List together with the total trip count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites name, dates and notes. Returns domain.ErrNotFound if
	// no trip has that ID.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, by cascade, its activities.
	// Returns domain.ErrNotFound if no trip has that ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo returns a TripRepo running its queries on db.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const (
	tripColumns = ` id, name, start_date, end_date, notes, created_at, updated_at`
	tripOrder   = ` ORDER BY start_date DESC, created_at DESC`
)

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (name, start_date, end_date, notes)
		VALUES (@name, @start_date, @end_date, @notes)
		RETURNING` + tripColumns

	created, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT` + tripColumns + ` FROM trips WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := r.collect(ctx, `SELECT`+tripColumns+` FROM trips`+tripOrder, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	q := `SELECT` + tripColumns + ` FROM trips` + tripOrder + ` LIMIT @limit OFFSET @offset`
	trips, err := r.collect(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET name = @name, start_date = @start_date, end_date = @end_date,
		    notes = @notes, updated_at = now()
		WHERE id = @id
		RETURNING` + tripColumns

	updated, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) collect(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Trip, error) {
		return scanTrip(row)
	})
}

// tripArgs binds a trip's writable columns. A nil EndDate becomes NULL.
func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":         t.ID,
		"name":       t.Name,
		"start_date": t.StartDate,
		"end_date":   t.EndDate,
		"notes":      t.Notes,
	}
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a row selected with tripColumns. pgx.ErrNoRows becomes
// domain.ErrNotFound.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		start, end pgtype.Date
	)
	if err := s.Scan(&t.ID, &t.Name, &start, &end, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.StartDate = start.Time
	if end.Valid {
		e := end.Time
		t.EndDate = &e
	}
	return t, nil
}

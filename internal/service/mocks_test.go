package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Set only the function fields a test needs; calling an unset one panics.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockActivityRepo is a hand-written test double for repo.ActivityRepo.
type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID      func(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	update       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete       func(ctx context.Context, tripID, activityID uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, tripID, activityID)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityRepo) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	return m.delete(ctx, tripID, activityID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

// tripExists answers every GetByID with a trip carrying the requested ID.
func tripExists() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, Name: "Lisbon"}, nil
		},
	}
}

// echoActivities returns whatever it is asked to store.
func echoActivities() *mockActivityRepo {
	return &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) { return a, nil },
		update: func(_ context.Context, a domain.Activity) (domain.Activity, error) { return a, nil },
	}
}

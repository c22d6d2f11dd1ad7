package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/service"
)

func validTrip() domain.Trip {
	end := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:      "Lisbon and Porto",
		StartDate: time.Date(2024, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}
}

func echoTrips() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

func TestTripService_Create_TrimsName(t *testing.T) {
	svc := service.NewTripService(echoTrips())

	trip := validTrip()
	trip.Name = "  Lisbon  "
	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
}

func TestTripService_Validation(t *testing.T) {
	before := validTrip().StartDate.AddDate(0, 0, -1)
	same := validTrip().StartDate

	cases := []struct {
		name    string
		mutate  func(*domain.Trip)
		wantErr bool
	}{
		{"valid", func(*domain.Trip) {}, false},
		{"blank name", func(tr *domain.Trip) { tr.Name = "   " }, true},
		{"missing start date", func(tr *domain.Trip) { tr.StartDate = time.Time{} }, true},
		{"end before start", func(tr *domain.Trip) { tr.EndDate = &before }, true},
		{"one-day trip", func(tr *domain.Trip) { tr.EndDate = &same }, false},
		{"open-ended", func(tr *domain.Trip) { tr.EndDate = nil }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTripService(echoTrips())
			trip := validTrip()
			tc.mutate(&trip)

			_, createErr := svc.Create(context.Background(), trip)
			_, updateErr := svc.Update(context.Background(), trip)

			if tc.wantErr {
				assert.ErrorIs(t, createErr, domain.ErrValidation)
				assert.ErrorIs(t, updateErr, domain.ErrValidation)
			} else {
				assert.NoError(t, createErr)
				assert.NoError(t, updateErr)
			}
		})
	}
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := service.NewTripService(&mockTripRepo{
		create: func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, repoErr },
	})

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

func TestTripService_GetByID(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != want.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return want, nil
		},
	})

	got, err := svc.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_NeverNil(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		list: func(context.Context) ([]domain.Trip, error) { return nil, nil },
	})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_ListPaged(t *testing.T) {
	var gotParams domain.PaginationParams
	svc := service.NewTripService(&mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return []domain.Trip{validTrip()}, 7, nil
		},
	})
	p := domain.PaginationParams{Page: 2, Limit: 3}

	page, err := svc.ListPaged(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, p, gotParams)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.HasMore())
}

func TestTripService_Delete(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	})

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

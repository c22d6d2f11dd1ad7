package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/handler"
	"github.com/pkordes/waypoint/internal/places"
	"github.com/pkordes/waypoint/internal/service"
)

// Test doubles for the handler interfaces. Set only the method fields your
// test needs; an unset field panics, which flags an unexpected call.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockActivityServicer struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID      func(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	update       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete       func(ctx context.Context, tripID, activityID uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, tripID, activityID uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, tripID, activityID)
}
func (m *mockActivityServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityServicer) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityServicer) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	return m.delete(ctx, tripID, activityID)
}

type mockItineraryBuilder struct {
	build func(ctx context.Context, tripID uuid.UUID) (service.TripItinerary, error)
}

func (m *mockItineraryBuilder) Build(ctx context.Context, tripID uuid.UUID) (service.TripItinerary, error) {
	return m.build(ctx, tripID)
}

type mockPlaceSearcher struct {
	autocomplete func(ctx context.Context, req places.AutocompleteRequest) ([]places.Suggestion, error)
	textSearch   func(ctx context.Context, req places.TextSearchRequest) ([]places.Place, error)
	nearby       func(ctx context.Context, req places.NearbyRequest) ([]places.Place, error)
}

func (m *mockPlaceSearcher) Autocomplete(ctx context.Context, req places.AutocompleteRequest) ([]places.Suggestion, error) {
	return m.autocomplete(ctx, req)
}
func (m *mockPlaceSearcher) TextSearch(ctx context.Context, req places.TextSearchRequest) ([]places.Place, error) {
	return m.textSearch(ctx, req)
}
func (m *mockPlaceSearcher) NearbySearch(ctx context.Context, req places.NearbyRequest) ([]places.Place, error) {
	return m.nearby(ctx, req)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.ActivityServicer = (*mockActivityServicer)(nil)
	_ handler.ItineraryBuilder = (*mockItineraryBuilder)(nil)
	_ handler.PlaceSearcher    = (*mockPlaceSearcher)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve wires a Server with deps into a chi router, the same way main.go
// does, and runs one request through it.
func serve(deps handler.Deps, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewServer(deps).Handler().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// errorCode decodes an ErrorResponse body and returns its code.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

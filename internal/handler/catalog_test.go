package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmarket/api/internal/domain"
)

func TestIndex(t *testing.T) {
	catalog := &mockCatalogServicer{
		index: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture()}, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Serengeti Safari")
}

func TestListTrips_PassesPagination(t *testing.T) {
	catalog := &mockCatalogServicer{
		list: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Trip{tripFixture()}, 11, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/trips?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":11`)
}

func TestGetTrip_NotFound(t *testing.T) {
	catalog := &mockCatalogServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.CatalogService.GetByID: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/single_trip/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "trip not found")
}

func TestSellTrip(t *testing.T) {
	sellerID := uuid.New()
	typeID := uuid.New()

	catalog := &mockCatalogServicer{
		sell: func(_ context.Context, gotSeller uuid.UUID, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, sellerID, gotSeller)
			assert.Equal(t, "Serengeti Safari", trip.Title)
			assert.Equal(t, typeID, trip.TripTypeID)
			assert.True(t, trip.Price.String() == "499.99")
			trip.ID = uuid.New()
			trip.SellerID = gotSeller
			return trip, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, sellerID)

	body, _ := json.Marshal(map[string]any{
		"title":         "Serengeti Safari",
		"trip_type_id":  typeID.String(),
		"num_of_nights": 7,
		"location":      "Tanzania",
		"price":         "499.99",
		"quantity":      5,
	})
	req := httptest.NewRequest(http.MethodPost, "/sell", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), sellerID.String())
}

func TestSellTrip_BadPrice(t *testing.T) {
	h := newHTTPHandler(deps{}, uuid.New())

	body, _ := json.Marshal(map[string]any{
		"title":         "Serengeti Safari",
		"trip_type_id":  uuid.NewString(),
		"num_of_nights": 7,
		"price":         "not-a-number",
		"quantity":      5,
	})
	req := httptest.NewRequest(http.MethodPost, "/sell", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearch(t *testing.T) {
	catalog := &mockCatalogServicer{
		search: func(_ context.Context, q string) ([]domain.Trip, error) {
			assert.Equal(t, "safari", q)
			return []domain.Trip{tripFixture()}, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/search?q=safari", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Serengeti Safari")
}

func TestDeleteUserTrip_SoldTripConflicts(t *testing.T) {
	catalog := &mockCatalogServicer{
		deleteListing: func(_ context.Context, _, _ uuid.UUID) error {
			return fmt.Errorf("service.CatalogService.DeleteListing: %w", domain.ErrConflict)
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.New())

	body, _ := json.Marshal(map[string]string{"trip_id": uuid.NewString()})
	req := httptest.NewRequest(http.MethodPost, "/delete_user_trip", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListTripTypes(t *testing.T) {
	catalog := &mockCatalogServicer{
		tripTypes: func(_ context.Context) ([]domain.TripTypeSummary, error) {
			return []domain.TripTypeSummary{
				{
					TripType: domain.TripType{ID: uuid.New(), Name: "Safari"},
					NumTrips: 4,
					Newest:   []domain.Trip{tripFixture()},
				},
			}, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/trip_types", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"num_trips":4`)
}

func TestGetTripsByType(t *testing.T) {
	typeID := uuid.New()

	catalog := &mockCatalogServicer{
		tripsByType: func(_ context.Context, gotID uuid.UUID) (domain.TripType, []domain.Trip, error) {
			assert.Equal(t, typeID, gotID)
			return domain.TripType{ID: gotID, Name: "Safari"}, []domain.Trip{tripFixture()}, nil
		},
	}
	h := newHTTPHandler(deps{catalog: catalog}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/trip_type_trips/"+typeID.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Safari")
}

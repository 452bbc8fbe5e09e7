package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// indexPageSize is how many of the newest listings the storefront page shows.
const indexPageSize = 15

// CatalogService implements browsing, searching, and seller-side management
// of trip listings.
type CatalogService struct {
	trips repo.TripRepo
	types repo.TripTypeRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repos.
func NewCatalogService(trips repo.TripRepo, types repo.TripTypeRepo) *CatalogService {
	return &CatalogService{trips: trips, types: types}
}

// Index returns the newest listings for the storefront page.
func (s *CatalogService) Index(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.ListLatest(ctx, indexPageSize)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Index: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// List returns one page of all listings plus the total count.
func (s *CatalogService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// GetByID returns a single trip listing.
func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CatalogService.GetByID: %w", err)
	}
	return trip, nil
}

// Sell validates and persists a new listing for the given seller.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound
// when the trip type does not exist.
func (s *CatalogService) Sell(ctx context.Context, sellerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if _, err := s.types.GetByID(ctx, trip.TripTypeID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.CatalogService.Sell: trip type: %w", err)
	}

	trip.SellerID = sellerID
	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CatalogService.Sell: %w", err)
	}
	return created, nil
}

// Search returns listings whose title or location contains the query
// substring. A blank query matches nothing.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Trip{}, nil
	}
	trips, err := s.trips.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Search: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// ListBySeller returns all listings owned by the given customer.
func (s *CatalogService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListBySeller: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// DeleteListing removes one of the seller's own trips.
// Returns domain.ErrForbidden when the trip belongs to another seller and
// domain.ErrConflict when the trip has been sold or carted; a line item
// referencing it blocks deletion.
func (s *CatalogService) DeleteListing(ctx context.Context, sellerID, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.CatalogService.DeleteListing: %w", err)
	}
	if trip.SellerID != sellerID {
		return fmt.Errorf("service.CatalogService.DeleteListing: %w", domain.ErrForbidden)
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.CatalogService.DeleteListing: %w", err)
	}
	return nil
}

// TripTypes returns the category overview: every type with its trip count
// and newest listings.
func (s *CatalogService) TripTypes(ctx context.Context) ([]domain.TripTypeSummary, error) {
	summaries, err := s.types.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.TripTypes: %w", err)
	}
	if summaries == nil {
		summaries = []domain.TripTypeSummary{}
	}
	return summaries, nil
}

// TripsByType returns a category and all trips in it.
// Returns domain.ErrNotFound when the type does not exist.
func (s *CatalogService) TripsByType(ctx context.Context, typeID uuid.UUID) (domain.TripType, []domain.Trip, error) {
	tt, err := s.types.GetByID(ctx, typeID)
	if err != nil {
		return domain.TripType{}, nil, fmt.Errorf("service.CatalogService.TripsByType: %w", err)
	}
	trips, err := s.trips.ListByType(ctx, typeID)
	if err != nil {
		return domain.TripType{}, nil, fmt.Errorf("service.CatalogService.TripsByType: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return tt, trips, nil
}

// CreateTripType adds a category by name, returning the existing one when
// the name is already taken.
// Returns domain.ErrValidation when the name is blank.
func (s *CatalogService) CreateTripType(ctx context.Context, name string) (domain.TripType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.TripType{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	tt, err := s.types.Upsert(ctx, name)
	if err != nil {
		return domain.TripType{}, fmt.Errorf("service.CatalogService.CreateTripType: %w", err)
	}
	return tt, nil
}

// validateTrip enforces business rules for new listings.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Price must be positive.
//   - Quantity must be non-negative; nights must be positive.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !trip.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrValidation)
	}
	if trip.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	if trip.NumOfNights <= 0 {
		return fmt.Errorf("%w: num_of_nights must be greater than zero", domain.ErrValidation)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// WishlistService implements trip bookmarking.
type WishlistService struct {
	wishlist repo.WishlistRepo
	trips    repo.TripRepo
}

// NewWishlistService constructs a WishlistService backed by the provided repos.
func NewWishlistService(wishlist repo.WishlistRepo, trips repo.TripRepo) *WishlistService {
	return &WishlistService{wishlist: wishlist, trips: trips}
}

// Add bookmarks a trip for the customer with an optional note. Re-adding the
// same trip updates the note.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *WishlistService) Add(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Add: %w", err)
	}
	item, err := s.wishlist.Upsert(ctx, customerID, tripID, note)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Add: %w", err)
	}
	return item, nil
}

// List returns the customer's wishlist, newest first.
func (s *WishlistService) List(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error) {
	items, err := s.wishlist.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("service.WishlistService.List: %w", err)
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return items, nil
}

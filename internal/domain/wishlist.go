package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem bookmarks a trip for a customer, with an optional note.
// A customer can wishlist a trip at most once; re-adding updates the note.
type WishlistItem struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	TripID     uuid.UUID `json:"trip_id"`
	TripTitle  string    `json:"trip_title,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

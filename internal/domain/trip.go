package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip is a sellable travel package listed by a customer.
// Quantity is the remaining stock; QuantitySold counts confirmed sales.
// Both counters are mutated only at order confirmation; adding a trip to a
// cart reserves nothing.
type Trip struct {
	ID           uuid.UUID       `json:"id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	TripTypeID   uuid.UUID       `json:"trip_type_id"`
	Title        string          `json:"title"`
	NumOfNights  int             `json:"num_of_nights"`
	Location     string          `json:"location,omitempty"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	QuantitySold int             `json:"quantity_sold"`
	ImageURL     *string         `json:"image_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TripType is a category a trip belongs to (e.g. "Safari", "Cruise").
type TripType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TripTypeSummary is the trip-types overview entry: the category itself,
// how many trips it holds, and a preview of its newest listings.
type TripTypeSummary struct {
	TripType `json:"trip_type"`
	NumTrips int    `json:"num_trips"`
	Newest   []Trip `json:"newest"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one cart or one placed purchase. While Active is true the order
// is the customer's open cart; flipping Active to false at confirmation is
// the one-way transition to a placed order. PlacedAt and PaymentMethodID are
// nil until that transition and mandatory after it.
//
// The database enforces at most one active order per customer with a partial
// unique index, so "the cart" is always an unambiguous lookup.
type Order struct {
	ID              uuid.UUID  `json:"id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	PaymentMethodID *uuid.UUID `json:"payment_method_id,omitempty"`
	PlacedAt        *time.Time `json:"placed_at,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// LineItem attaches one unit of one trip to one order. There is no quantity
// column: buying the same trip twice produces two rows. UnitPrice is the
// trip's price snapshotted when the item was added, so cart and order totals
// never depend on later price edits.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	TripID    uuid.UUID       `json:"trip_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// CartItem is a line item joined with the trip fields a cart or order view
// needs to display.
type CartItem struct {
	LineItemID uuid.UUID       `json:"line_item_id"`
	TripID     uuid.UUID       `json:"trip_id"`
	Title      string          `json:"title"`
	Location   string          `json:"location,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Cart is the view of an open order: its items and their summed total.
// Total is zero when the cart is empty.
type Cart struct {
	OrderID uuid.UUID       `json:"order_id"`
	Items   []CartItem      `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

// OrderDetail is the read-only view of a single order (open or placed).
type OrderDetail struct {
	Order Order           `json:"order"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// SumItems adds up the unit prices of items. Used by both cart and order
// detail views so the reported total is always the sum of what is returned.
func SumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice)
	}
	return total
}

package domain

import "github.com/shopspring/decimal"

// ExportRow is a single row in a customer's order-history export.
// It is a flat, denormalized view: one row per line item, with order fields
// repeated for every item on that order. Only placed orders are exported;
// an open cart is not history yet.
type ExportRow struct {
	// Order fields; repeated for every item on the order.
	OrderID       string
	PlacedAt      string // RFC 3339 timestamp
	PaymentMethod string // display name of the method the order was placed with

	// Item fields.
	TripTitle string
	Location  string
	UnitPrice decimal.Decimal
}

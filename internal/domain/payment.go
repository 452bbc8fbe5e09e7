package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a stored payment instrument belonging to a customer.
// Token is an opaque, bounded payment-token reference; raw account numbers
// are never stored. The token is write-only: JSON responses expose only the
// masked form.
type PaymentMethod struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Token      string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// MaskedToken returns the last four characters of the token prefixed with
// "****", the only form of the token that leaves the service.
func (p PaymentMethod) MaskedToken() string {
	if len(p.Token) <= 4 {
		return "****"
	}
	return "****" + p.Token[len(p.Token)-4:]
}

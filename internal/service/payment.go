package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// Payment token bounds. Tokens are opaque references issued by a payment
// provider, never raw account numbers, so the charset is restricted and the
// length capped to fit the varchar(64) column.
const (
	minTokenLen = 8
	maxTokenLen = 64
)

// PaymentMethodService implements stored payment instrument management.
type PaymentMethodService struct {
	payments repo.PaymentMethodRepo
}

// NewPaymentMethodService constructs a PaymentMethodService backed by the provided repo.
func NewPaymentMethodService(payments repo.PaymentMethodRepo) *PaymentMethodService {
	return &PaymentMethodService{payments: payments}
}

// Add stores a new payment method for the customer.
// Returns domain.ErrValidation when the name is blank or the token is not a
// well-formed payment-token reference.
func (s *PaymentMethodService) Add(ctx context.Context, customerID uuid.UUID, name, token string) (domain.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.PaymentMethod{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(name) > 15 {
		return domain.PaymentMethod{}, fmt.Errorf("%w: name must be at most 15 characters", domain.ErrValidation)
	}
	if err := validateToken(token); err != nil {
		return domain.PaymentMethod{}, err
	}

	created, err := s.payments.Create(ctx, domain.PaymentMethod{
		CustomerID: customerID,
		Name:       name,
		Token:      token,
	})
	if err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("service.PaymentMethodService.Add: %w", err)
	}
	return created, nil
}

// List returns the customer's stored payment methods.
func (s *PaymentMethodService) List(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error) {
	methods, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("service.PaymentMethodService.List: %w", err)
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	return methods, nil
}

// Remove deletes one of the customer's own payment methods.
// Returns domain.ErrForbidden when the method belongs to another customer
// and domain.ErrConflict when a placed order still references it.
func (s *PaymentMethodService) Remove(ctx context.Context, customerID, methodID uuid.UUID) error {
	pm, err := s.payments.GetByID(ctx, methodID)
	if err != nil {
		return fmt.Errorf("service.PaymentMethodService.Remove: %w", err)
	}
	if pm.CustomerID != customerID {
		return fmt.Errorf("service.PaymentMethodService.Remove: %w", domain.ErrForbidden)
	}

	if err := s.payments.Delete(ctx, methodID); err != nil {
		return fmt.Errorf("service.PaymentMethodService.Remove: %w", err)
	}
	return nil
}

// validateToken checks payment-token shape: bounded length, restricted charset.
func validateToken(token string) error {
	if len(token) < minTokenLen || len(token) > maxTokenLen {
		return fmt.Errorf("%w: token must be between %d and %d characters", domain.ErrValidation, minTokenLen, maxTokenLen)
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: token may only contain letters, digits, '-' and '_'", domain.ErrValidation)
		}
	}
	return nil
}

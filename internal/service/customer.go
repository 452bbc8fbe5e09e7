package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// CustomerService implements registration, credential checks, and profile
// management. It holds the order repo as well because the profile page shows
// the customer's past (placed) orders.
type CustomerService struct {
	customers repo.CustomerRepo
	orders    repo.OrderRepo
}

// NewCustomerService constructs a CustomerService backed by the provided repos.
func NewCustomerService(customers repo.CustomerRepo, orders repo.OrderRepo) *CustomerService {
	return &CustomerService{customers: customers, orders: orders}
}

// Register creates a new customer with a bcrypt-hashed password.
// Returns domain.ErrValidation for missing fields and domain.ErrConflict
// when the username or email is already taken.
func (s *CustomerService) Register(ctx context.Context, reg domain.Registration) (domain.Customer, error) {
	if strings.TrimSpace(reg.Username) == "" {
		return domain.Customer{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if strings.TrimSpace(reg.Email) == "" {
		return domain.Customer{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(reg.Password) < 8 {
		return domain.Customer{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Register: hash: %w", err)
	}

	created, err := s.customers.Create(ctx, domain.Customer{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Register: %w", err)
	}
	return created, nil
}

// Authenticate verifies a username/password pair and returns the customer.
// Returns domain.ErrUnauthorized for an unknown username or a wrong
// password; the two cases are indistinguishable to the caller.
func (s *CustomerService) Authenticate(ctx context.Context, username, password string) (domain.Customer, error) {
	c, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Authenticate: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Authenticate: %w", domain.ErrUnauthorized)
	}
	return c, nil
}

// GetByID returns a single customer.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	return c, nil
}

// Profile returns the customer and their placed-order history.
func (s *CustomerService) Profile(ctx context.Context, id uuid.UUID) (domain.Customer, []domain.Order, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, nil, fmt.Errorf("service.CustomerService.Profile: %w", err)
	}
	past, err := s.orders.ListPlacedByCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, nil, fmt.Errorf("service.CustomerService.Profile: %w", err)
	}
	return c, past, nil
}

// UpdateProfile overwrites the customer's profile fields and returns the
// updated record.
func (s *CustomerService) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error) {
	c, err := s.customers.UpdateProfile(ctx, id, upd)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.UpdateProfile: %w", err)
	}
	return c, nil
}

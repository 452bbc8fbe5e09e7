package repo

import (
	"errors"
	"fmt"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripmarket/api/internal/domain"
)

// CustomerRepo defines the persistence operations for Customers.
type CustomerRepo interface {
	// Create inserts a new customer and returns the persisted record.
	// Returns domain.ErrConflict if the username or email is already taken.
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)

	// GetByID retrieves a single customer by its UUID primary key.
	// Returns domain.ErrNotFound if no customer with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)

	// GetByUsername retrieves a customer by username (login lookup).
	// Returns domain.ErrNotFound if no customer with that username exists.
	GetByUsername(ctx context.Context, username string) (domain.Customer, error)

	// UpdateProfile overwrites the profile fields of an existing customer and
	// returns the updated record. Returns domain.ErrNotFound if it does not exist.
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error)
}

// pgCustomerRepo is the Postgres implementation of CustomerRepo.
type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

const customerColumns = `id, username, email, password_hash, first_name, last_name, phone, street_address, created_at, updated_at`

func (r *pgCustomerRepo) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	const q = `
		INSERT INTO customers (username, email, password_hash, first_name, last_name)
		VALUES (@username, @email, @password_hash, @first_name, @last_name)
		RETURNING ` + customerColumns

	args := pgx.NamedArgs{
		"username":      c.Username,
		"email":         c.Email,
		"password_hash": c.PasswordHash,
		"first_name":    c.FirstName,
		"last_name":     c.LastName,
	}

	result, err := scanCustomer(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = @id`

	result, err := scanCustomer(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) GetByUsername(ctx context.Context, username string) (domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE username = @username`

	result, err := scanCustomer(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.GetByUsername: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error) {
	const q = `
		UPDATE customers
		SET first_name     = @first_name,
		    last_name      = @last_name,
		    phone          = @phone,
		    street_address = @street_address,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + customerColumns

	args := pgx.NamedArgs{
		"id":             id,
		"first_name":     upd.FirstName,
		"last_name":      upd.LastName,
		"phone":          upd.Phone,
		"street_address": upd.StreetAddress,
	}

	result, err := scanCustomer(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

// scanCustomer maps a single database row into a domain.Customer.
func scanCustomer(s scanner) (domain.Customer, error) {
	var (
		c  domain.Customer
		id pgtype.UUID
	)
	err := s.Scan(&id, &c.Username, &c.Email, &c.PasswordHash,
		&c.FirstName, &c.LastName, &c.Phone, &c.StreetAddress,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

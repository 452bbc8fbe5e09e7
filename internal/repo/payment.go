package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripmarket/api/internal/domain"
)

// PaymentMethodRepo defines the persistence operations for PaymentMethods.
type PaymentMethodRepo interface {
	// Create inserts a new payment method and returns the persisted record.
	Create(ctx context.Context, pm domain.PaymentMethod) (domain.PaymentMethod, error)

	// GetByID retrieves a payment method by its UUID primary key.
	// Returns domain.ErrNotFound if no method with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.PaymentMethod, error)

	// ListByCustomer returns all payment methods owned by the customer,
	// ordered by display name.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error)

	// Delete removes a payment method by ID. Returns domain.ErrNotFound if it
	// does not exist, or domain.ErrConflict when a placed order references it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPaymentMethodRepo is the Postgres implementation of PaymentMethodRepo.
type pgPaymentMethodRepo struct {
	db db
}

// NewPaymentMethodRepo constructs a PaymentMethodRepo backed by the provided db connection.
func NewPaymentMethodRepo(db db) PaymentMethodRepo {
	return &pgPaymentMethodRepo{db: db}
}

const paymentMethodColumns = `id, customer_id, name, token, created_at`

func (r *pgPaymentMethodRepo) Create(ctx context.Context, pm domain.PaymentMethod) (domain.PaymentMethod, error) {
	const q = `
		INSERT INTO payment_methods (customer_id, name, token)
		VALUES (@customer_id, @name, @token)
		RETURNING ` + paymentMethodColumns

	args := pgx.NamedArgs{
		"customer_id": pm.CustomerID,
		"name":        pm.Name,
		"token":       pm.Token,
	}

	result, err := scanPaymentMethod(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("repo.PaymentMethodRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.PaymentMethod, error) {
	const q = `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = @id`

	result, err := scanPaymentMethod(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("repo.PaymentMethodRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPaymentMethodRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error) {
	const q = `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE customer_id = @customer_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.PaymentMethodRepo.ListByCustomer: %w", err)
	}
	defer rows.Close()

	methods := []domain.PaymentMethod{}
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PaymentMethodRepo.ListByCustomer: scan: %w", err)
		}
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PaymentMethodRepo.ListByCustomer: rows: %w", err)
	}
	return methods, nil
}

func (r *pgPaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM payment_methods WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		// orders.payment_method_id is ON DELETE RESTRICT: a method used by a
		// placed order cannot be removed.
		if pgErrCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("repo.PaymentMethodRepo.Delete: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.PaymentMethodRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PaymentMethodRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPaymentMethod maps a single database row into a domain.PaymentMethod.
func scanPaymentMethod(s scanner) (domain.PaymentMethod, error) {
	var (
		pm       domain.PaymentMethod
		id       pgtype.UUID
		customer pgtype.UUID
	)
	err := s.Scan(&id, &customer, &pm.Name, &pm.Token, &pm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PaymentMethod{}, domain.ErrNotFound
		}
		return domain.PaymentMethod{}, err
	}
	pm.ID = uuid.UUID(id.Bytes)
	pm.CustomerID = uuid.UUID(customer.Bytes)
	return pm, nil
}

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

// WishlistRepo defines the persistence operations for wishlist items.
type WishlistRepo interface {
	// Upsert bookmarks a trip for a customer. Re-adding an already
	// wishlisted trip updates the note instead of failing.
	Upsert(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error)

	// ListByCustomer returns the customer's wishlist joined with trip titles,
	// newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error)
}

// pgWishlistRepo is the Postgres implementation of WishlistRepo.
type pgWishlistRepo struct {
	db db
}

// NewWishlistRepo constructs a WishlistRepo backed by the provided db connection.
func NewWishlistRepo(db db) WishlistRepo {
	return &pgWishlistRepo{db: db}
}

func (r *pgWishlistRepo) Upsert(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error) {
	const q = `
		INSERT INTO wishlist_items (customer_id, trip_id, note)
		VALUES (@customer_id, @trip_id, @note)
		ON CONFLICT (customer_id, trip_id) DO UPDATE SET note = EXCLUDED.note
		RETURNING id, customer_id, trip_id, note, created_at`

	args := pgx.NamedArgs{"customer_id": customerID, "trip_id": tripID, "note": note}

	var (
		w        domain.WishlistItem
		id       pgtype.UUID
		customer pgtype.UUID
		trip     pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, args).Scan(&id, &customer, &trip, &w.Note, &w.CreatedAt)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Upsert: %w", err)
	}
	w.ID = uuid.UUID(id.Bytes)
	w.CustomerID = uuid.UUID(customer.Bytes)
	w.TripID = uuid.UUID(trip.Bytes)
	return w, nil
}

func (r *pgWishlistRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error) {
	const q = `
		SELECT w.id, w.customer_id, w.trip_id, t.title, w.note, w.created_at
		FROM wishlist_items w
		JOIN trips t ON t.id = w.trip_id
		WHERE w.customer_id = @customer_id
		ORDER BY w.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListByCustomer: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var (
			w        domain.WishlistItem
			id       pgtype.UUID
			customer pgtype.UUID
			trip     pgtype.UUID
		)
		if err := rows.Scan(&id, &customer, &trip, &w.TripTitle, &w.Note, &w.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("repo.WishlistRepo.ListByCustomer: scan: %w", err)
		}
		w.ID = uuid.UUID(id.Bytes)
		w.CustomerID = uuid.UUID(customer.Bytes)
		w.TripID = uuid.UUID(trip.Bytes)
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListByCustomer: rows: %w", err)
	}
	return items, nil
}

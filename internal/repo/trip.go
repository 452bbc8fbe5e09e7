package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tripmarket/api/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListLatest returns the most recently listed trips, newest first.
	ListLatest(ctx context.Context, limit int) ([]domain.Trip, error)

	// ListPaged returns one page of trips ordered newest first, plus the
	// total trip count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListByType returns all trips in the given category, newest first.
	ListByType(ctx context.Context, tripTypeID uuid.UUID) ([]domain.Trip, error)

	// ListBySeller returns all trips listed by the given customer, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error)

	// Search returns trips whose title or location contains the query
	// substring (case-insensitive), ordered by title.
	Search(ctx context.Context, query string) ([]domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not
	// exist, or domain.ErrConflict if line items still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, seller_id, trip_type_id, title, num_of_nights, location, description, price::text, quantity, quantity_sold, image_url, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (seller_id, trip_type_id, title, num_of_nights, location, description, price, quantity, image_url)
		VALUES (@seller_id, @trip_type_id, @title, @num_of_nights, @location, @description, @price, @quantity, @image_url)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"seller_id":     trip.SellerID,
		"trip_type_id":  trip.TripTypeID,
		"title":         trip.Title,
		"num_of_nights": trip.NumOfNights,
		"location":      trip.Location,
		"description":   trip.Description,
		"price":         trip.Price.StringFixed(2),
		"quantity":      trip.Quantity,
		"image_url":     trip.ImageURL, // nil becomes NULL
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListLatest(ctx context.Context, limit int) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC
		LIMIT @limit`

	return r.list(ctx, "ListLatest", q, pgx.NamedArgs{"limit": limit})
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	trips, err := r.list(ctx, "ListPaged", q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) ListByType(ctx context.Context, tripTypeID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE trip_type_id = @trip_type_id
		ORDER BY created_at DESC`

	return r.list(ctx, "ListByType", q, pgx.NamedArgs{"trip_type_id": tripTypeID})
}

func (r *pgTripRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE seller_id = @seller_id
		ORDER BY created_at DESC`

	return r.list(ctx, "ListBySeller", q, pgx.NamedArgs{"seller_id": sellerID})
}

// likeEscaper neutralizes LIKE metacharacters so a user query matches
// literally: searching for "100%" must not match every trip.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *pgTripRepo) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE title ILIKE @pattern ESCAPE '\'
		   OR location ILIKE @pattern ESCAPE '\'
		ORDER BY title`

	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.list(ctx, "Search", q, pgx.NamedArgs{"pattern": pattern})
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// list runs a query returning trip rows and scans them into a slice.
// op names the calling method for error wrapping.
func (r *pgTripRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, NUMERIC-as-text, and nullable image_url conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		id       pgtype.UUID
		seller   pgtype.UUID
		tripType pgtype.UUID
		price    string
		imageURL pgtype.Text
	)

	err := s.Scan(&id, &seller, &tripType, &t.Title, &t.NumOfNights,
		&t.Location, &t.Description, &price, &t.Quantity, &t.QuantitySold,
		&imageURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.SellerID = uuid.UUID(seller.Bytes)
	t.TripTypeID = uuid.UUID(tripType.Bytes)
	t.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	if imageURL.Valid {
		u := imageURL.String
		t.ImageURL = &u
	}

	return t, nil
}

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

// TripTypeRepo defines the persistence operations for trip categories.
type TripTypeRepo interface {
	// Upsert inserts a trip type by name, or returns the existing type if the
	// name already exists.
	Upsert(ctx context.Context, name string) (domain.TripType, error)

	// GetByID retrieves a trip type by its UUID primary key.
	// Returns domain.ErrNotFound if no type with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripType, error)

	// ListSummaries returns every trip type with its trip count and the three
	// newest trips in the category, newest types first.
	ListSummaries(ctx context.Context) ([]domain.TripTypeSummary, error)
}

// pgTripTypeRepo is the Postgres implementation of TripTypeRepo.
type pgTripTypeRepo struct {
	db db
}

// NewTripTypeRepo constructs a TripTypeRepo backed by the provided db connection.
func NewTripTypeRepo(db db) TripTypeRepo {
	return &pgTripTypeRepo{db: db}
}

// Upsert inserts a trip type or returns the existing row on name conflict.
// The DO UPDATE SET trick forces the RETURNING clause to fire even when the
// conflict handler skips the insert; without it, RETURNING returns nothing
// on DO NOTHING conflicts.
func (r *pgTripTypeRepo) Upsert(ctx context.Context, name string) (domain.TripType, error) {
	const q = `
		INSERT INTO trip_types (name)
		VALUES (@name)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	result, err := scanTripType(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.TripType{}, fmt.Errorf("repo.TripTypeRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgTripTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripType, error) {
	const q = `SELECT id, name FROM trip_types WHERE id = @id`

	result, err := scanTripType(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TripType{}, fmt.Errorf("repo.TripTypeRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListSummaries loads all types plus per-type counts in one query, then the
// three newest trips per type with a window-function query. Two round trips
// total, regardless of how many categories exist.
func (r *pgTripTypeRepo) ListSummaries(ctx context.Context) ([]domain.TripTypeSummary, error) {
	const typesQ = `
		SELECT tt.id, tt.name, count(t.id)
		FROM trip_types tt
		LEFT JOIN trips t ON t.trip_type_id = tt.id
		GROUP BY tt.id, tt.name
		ORDER BY tt.id DESC`

	rows, err := r.db.Query(ctx, typesQ)
	if err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: %w", err)
	}
	defer rows.Close()

	var (
		summaries []domain.TripTypeSummary
		index     = map[uuid.UUID]int{}
	)
	for rows.Next() {
		var (
			s  domain.TripTypeSummary
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &s.Name, &s.NumTrips); err != nil {
			return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		s.Newest = []domain.Trip{}
		index[s.ID] = len(summaries)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: rows: %w", err)
	}

	const newestQ = `
		SELECT ` + tripColumns + `
		FROM (
			SELECT *, row_number() OVER (PARTITION BY trip_type_id ORDER BY created_at DESC) AS rn
			FROM trips
		) ranked
		WHERE rn <= 3`

	tripRows, err := r.db.Query(ctx, newestQ)
	if err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: newest: %w", err)
	}
	defer tripRows.Close()

	for tripRows.Next() {
		t, err := scanTrip(tripRows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: newest scan: %w", err)
		}
		if i, ok := index[t.TripTypeID]; ok {
			summaries[i].Newest = append(summaries[i].Newest, t)
		}
	}
	if err := tripRows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.ListSummaries: newest rows: %w", err)
	}

	return summaries, nil
}

// scanTripType maps a single database row into a domain.TripType.
func scanTripType(s scanner) (domain.TripType, error) {
	var (
		tt domain.TripType
		id pgtype.UUID
	)
	err := s.Scan(&id, &tt.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripType{}, domain.ErrNotFound
		}
		return domain.TripType{}, err
	}
	tt.ID = uuid.UUID(id.Bytes)
	return tt, nil
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tripmarket/api/internal/domain"
)

// OrderRepo defines the persistence operations for Orders and their line items.
// The cart lifecycle lives on this interface: an order is created lazily as a
// cart, accumulates line items, and is either confirmed (one transaction) or
// deleted.
type OrderRepo interface {
	// GetOrCreateActive returns the customer's open cart, creating it if none
	// exists. The partial unique index on (customer_id) WHERE active makes a
	// concurrent double-create impossible; the loser of the race gets the
	// winner's row.
	GetOrCreateActive(ctx context.Context, customerID uuid.UUID) (domain.Order, error)

	// GetByID retrieves a single order by its UUID primary key.
	// Returns domain.ErrNotFound if no order with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)

	// AddLineItem attaches one unit of a trip to an order at the given unit price.
	AddLineItem(ctx context.Context, orderID, tripID uuid.UUID, unitPrice decimal.Decimal) (domain.LineItem, error)

	// ListItems returns the order's line items joined with trip display fields,
	// in the order they were added.
	ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.CartItem, error)

	// DeleteLineItem removes the line item identified by the exact
	// (id, trip, order) triple. When the triple matches nothing, every line
	// item for that (trip, order) pair is removed instead; the degraded bulk
	// behavior for ambiguous keys. Returns domain.ErrNotFound only when both
	// passes delete zero rows.
	DeleteLineItem(ctx context.Context, orderID, tripID, lineItemID uuid.UUID) error

	// Confirm places an active order inside a single transaction: for every
	// trip referenced by k line items, quantity is decremented and
	// quantity_sold incremented by k; then payment_method_id, placed_at, and
	// active=false are written. Returns domain.ErrConflict if the order is no
	// longer active, domain.ErrNotFound if it does not exist. A failure at
	// any step rolls the whole transaction back; partial application is
	// impossible.
	Confirm(ctx context.Context, orderID, paymentMethodID uuid.UUID) (domain.Order, error)

	// Delete removes an order; its line items go by ON DELETE CASCADE.
	// Returns domain.ErrNotFound if the order does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListPlacedByCustomer returns the customer's placed orders, most recent first.
	ListPlacedByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)

	// ExportPlaced returns a flat row per line item across the customer's
	// placed orders, most recent order first.
	ExportPlaced(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error)
}

// pgOrderRepo is the Postgres implementation of OrderRepo.
type pgOrderRepo struct {
	db db
}

// NewOrderRepo constructs an OrderRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx; Confirm then
// runs in a savepoint, so rollback isolation still holds.
func NewOrderRepo(db db) OrderRepo {
	return &pgOrderRepo{db: db}
}

const orderColumns = `id, customer_id, payment_method_id, placed_at, active, created_at`

func (r *pgOrderRepo) GetOrCreateActive(ctx context.Context, customerID uuid.UUID) (domain.Order, error) {
	const selectQ = `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = @customer_id AND active`

	order, err := scanOrder(r.db.QueryRow(ctx, selectQ, pgx.NamedArgs{"customer_id": customerID}))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.GetOrCreateActive: %w", err)
	}

	// No open cart: create one. DO NOTHING on the partial index means a
	// concurrent creator wins quietly and the re-select below finds its row.
	const insertQ = `
		INSERT INTO orders (customer_id)
		VALUES (@customer_id)
		ON CONFLICT (customer_id) WHERE active DO NOTHING`

	if _, err := r.db.Exec(ctx, insertQ, pgx.NamedArgs{"customer_id": customerID}); err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.GetOrCreateActive: insert: %w", err)
	}

	order, err = scanOrder(r.db.QueryRow(ctx, selectQ, pgx.NamedArgs{"customer_id": customerID}))
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.GetOrCreateActive: reselect: %w", err)
	}
	return order, nil
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = @id`

	order, err := scanOrder(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.GetByID: %w", err)
	}
	return order, nil
}

func (r *pgOrderRepo) AddLineItem(ctx context.Context, orderID, tripID uuid.UUID, unitPrice decimal.Decimal) (domain.LineItem, error) {
	const q = `
		INSERT INTO line_items (order_id, trip_id, unit_price)
		VALUES (@order_id, @trip_id, @unit_price)
		RETURNING id, order_id, trip_id, unit_price::text, created_at`

	args := pgx.NamedArgs{
		"order_id":   orderID,
		"trip_id":    tripID,
		"unit_price": unitPrice.StringFixed(2),
	}

	var (
		li    domain.LineItem
		id    pgtype.UUID
		oID   pgtype.UUID
		tID   pgtype.UUID
		price string
	)
	err := r.db.QueryRow(ctx, q, args).Scan(&id, &oID, &tID, &price, &li.CreatedAt)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("repo.OrderRepo.AddLineItem: %w", err)
	}
	li.ID = uuid.UUID(id.Bytes)
	li.OrderID = uuid.UUID(oID.Bytes)
	li.TripID = uuid.UUID(tID.Bytes)
	li.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("repo.OrderRepo.AddLineItem: parse price %q: %w", price, err)
	}
	return li, nil
}

func (r *pgOrderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.CartItem, error) {
	const q = `
		SELECT li.id, li.trip_id, t.title, t.location, li.unit_price::text
		FROM line_items li
		JOIN trips t ON t.id = li.trip_id
		WHERE li.order_id = @order_id
		ORDER BY li.created_at, li.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"order_id": orderID})
	if err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ListItems: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var (
			it     domain.CartItem
			liID   pgtype.UUID
			tripID pgtype.UUID
			price  string
		)
		if err := rows.Scan(&liID, &tripID, &it.Title, &it.Location, &price); err != nil {
			return nil, fmt.Errorf("repo.OrderRepo.ListItems: scan: %w", err)
		}
		it.LineItemID = uuid.UUID(liID.Bytes)
		it.TripID = uuid.UUID(tripID.Bytes)
		it.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("repo.OrderRepo.ListItems: parse price %q: %w", price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ListItems: rows: %w", err)
	}
	return items, nil
}

func (r *pgOrderRepo) DeleteLineItem(ctx context.Context, orderID, tripID, lineItemID uuid.UUID) error {
	const exactQ = `
		DELETE FROM line_items
		WHERE id = @id AND order_id = @order_id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, exactQ, pgx.NamedArgs{
		"id": lineItemID, "order_id": orderID, "trip_id": tripID,
	})
	if err != nil {
		return fmt.Errorf("repo.OrderRepo.DeleteLineItem: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// The exact triple matched nothing. Fall back to removing every line item
	// for the (trip, order) pair rather than failing.
	const pairQ = `
		DELETE FROM line_items
		WHERE order_id = @order_id AND trip_id = @trip_id`

	tag, err = r.db.Exec(ctx, pairQ, pgx.NamedArgs{"order_id": orderID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.OrderRepo.DeleteLineItem: fallback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OrderRepo.DeleteLineItem: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOrderRepo) Confirm(ctx context.Context, orderID, paymentMethodID uuid.UUID) (domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the order row so concurrent confirms of the same order serialize.
	const lockQ = `SELECT ` + orderColumns + ` FROM orders WHERE id = @id FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, lockQ, pgx.NamedArgs{"id": orderID}))
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: %w", err)
	}
	if !order.Active {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: order already placed: %w", domain.ErrConflict)
	}

	// Each line item is one unit, so a trip referenced by k items moves k
	// units from quantity to quantity_sold.
	const inventoryQ = `
		UPDATE trips
		SET quantity      = trips.quantity - li.n,
		    quantity_sold = trips.quantity_sold + li.n,
		    updated_at    = now()
		FROM (
			SELECT trip_id, count(*)::int AS n
			FROM line_items
			WHERE order_id = @order_id
			GROUP BY trip_id
		) li
		WHERE trips.id = li.trip_id`

	if _, err := tx.Exec(ctx, inventoryQ, pgx.NamedArgs{"order_id": orderID}); err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: inventory: %w", err)
	}

	const placeQ = `
		UPDATE orders
		SET payment_method_id = @payment_method_id,
		    active            = false,
		    placed_at         = now()
		WHERE id = @id AND active
		RETURNING ` + orderColumns

	placed, err := scanOrder(tx.QueryRow(ctx, placeQ, pgx.NamedArgs{
		"id": orderID, "payment_method_id": paymentMethodID,
	}))
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: place: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("repo.OrderRepo.Confirm: commit: %w", err)
	}
	return placed, nil
}

func (r *pgOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM orders WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.OrderRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OrderRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOrderRepo) ListPlacedByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = @customer_id AND NOT active
		ORDER BY placed_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ListPlacedByCustomer: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.OrderRepo.ListPlacedByCustomer: scan: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ListPlacedByCustomer: rows: %w", err)
	}
	return orders, nil
}

func (r *pgOrderRepo) ExportPlaced(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error) {
	const q = `
		SELECT o.id, o.placed_at, pm.name, t.title, t.location, li.unit_price::text
		FROM orders o
		JOIN payment_methods pm ON pm.id = o.payment_method_id
		JOIN line_items li ON li.order_id = o.id
		JOIN trips t ON t.id = li.trip_id
		WHERE o.customer_id = @customer_id AND NOT o.active
		ORDER BY o.placed_at DESC, li.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ExportPlaced: %w", err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var (
			row      domain.ExportRow
			orderID  pgtype.UUID
			placedAt pgtype.Timestamptz
			price    string
		)
		if err := rows.Scan(&orderID, &placedAt, &row.PaymentMethod, &row.TripTitle, &row.Location, &price); err != nil {
			return nil, fmt.Errorf("repo.OrderRepo.ExportPlaced: scan: %w", err)
		}
		row.OrderID = uuid.UUID(orderID.Bytes).String()
		if placedAt.Valid {
			row.PlacedAt = placedAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		row.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("repo.OrderRepo.ExportPlaced: parse price %q: %w", price, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OrderRepo.ExportPlaced: rows: %w", err)
	}
	return out, nil
}

// scanOrder maps a single database row into a domain.Order.
// payment_method_id and placed_at are NULL until the order is placed.
func scanOrder(s scanner) (domain.Order, error) {
	var (
		o        domain.Order
		id       pgtype.UUID
		customer pgtype.UUID
		pmID     pgtype.UUID
		placedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &customer, &pmID, &placedAt, &o.Active, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}

	o.ID = uuid.UUID(id.Bytes)
	o.CustomerID = uuid.UUID(customer.Bytes)
	if pmID.Valid {
		pm := uuid.UUID(pmID.Bytes)
		o.PaymentMethodID = &pm
	}
	if placedAt.Valid {
		t := placedAt.Time
		o.PlacedAt = &t
	}

	return o, nil
}

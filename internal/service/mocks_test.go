package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs; an unset method
// panics, which surfaces unexpected repo calls as test failures.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockOrderRepo struct {
	getOrCreateActive    func(ctx context.Context, customerID uuid.UUID) (domain.Order, error)
	getByID              func(ctx context.Context, id uuid.UUID) (domain.Order, error)
	addLineItem          func(ctx context.Context, orderID, tripID uuid.UUID, unitPrice decimal.Decimal) (domain.LineItem, error)
	listItems            func(ctx context.Context, orderID uuid.UUID) ([]domain.CartItem, error)
	deleteLineItem       func(ctx context.Context, orderID, tripID, lineItemID uuid.UUID) error
	confirm              func(ctx context.Context, orderID, paymentMethodID uuid.UUID) (domain.Order, error)
	delete               func(ctx context.Context, id uuid.UUID) error
	listPlacedByCustomer func(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	exportPlaced         func(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockOrderRepo) GetOrCreateActive(ctx context.Context, customerID uuid.UUID) (domain.Order, error) {
	return m.getOrCreateActive(ctx, customerID)
}
func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return m.getByID(ctx, id)
}
func (m *mockOrderRepo) AddLineItem(ctx context.Context, orderID, tripID uuid.UUID, unitPrice decimal.Decimal) (domain.LineItem, error) {
	return m.addLineItem(ctx, orderID, tripID, unitPrice)
}
func (m *mockOrderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.CartItem, error) {
	return m.listItems(ctx, orderID)
}
func (m *mockOrderRepo) DeleteLineItem(ctx context.Context, orderID, tripID, lineItemID uuid.UUID) error {
	return m.deleteLineItem(ctx, orderID, tripID, lineItemID)
}
func (m *mockOrderRepo) Confirm(ctx context.Context, orderID, paymentMethodID uuid.UUID) (domain.Order, error) {
	return m.confirm(ctx, orderID, paymentMethodID)
}
func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockOrderRepo) ListPlacedByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	return m.listPlacedByCustomer(ctx, customerID)
}
func (m *mockOrderRepo) ExportPlaced(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error) {
	return m.exportPlaced(ctx, customerID)
}

var _ repo.OrderRepo = (*mockOrderRepo)(nil)

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listLatest   func(ctx context.Context, limit int) ([]domain.Trip, error)
	listPaged    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listByType   func(ctx context.Context, tripTypeID uuid.UUID) ([]domain.Trip, error)
	listBySeller func(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error)
	search       func(ctx context.Context, query string) ([]domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListLatest(ctx context.Context, limit int) ([]domain.Trip, error) {
	return m.listLatest(ctx, limit)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) ListByType(ctx context.Context, tripTypeID uuid.UUID) ([]domain.Trip, error) {
	return m.listByType(ctx, tripTypeID)
}
func (m *mockTripRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error) {
	return m.listBySeller(ctx, sellerID)
}
func (m *mockTripRepo) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	return m.search(ctx, query)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockPaymentMethodRepo struct {
	create         func(ctx context.Context, pm domain.PaymentMethod) (domain.PaymentMethod, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.PaymentMethod, error)
	listByCustomer func(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error)
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPaymentMethodRepo) Create(ctx context.Context, pm domain.PaymentMethod) (domain.PaymentMethod, error) {
	return m.create(ctx, pm)
}
func (m *mockPaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.PaymentMethod, error) {
	return m.getByID(ctx, id)
}
func (m *mockPaymentMethodRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error) {
	return m.listByCustomer(ctx, customerID)
}
func (m *mockPaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.PaymentMethodRepo = (*mockPaymentMethodRepo)(nil)

type mockTripTypeRepo struct {
	upsert        func(ctx context.Context, name string) (domain.TripType, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.TripType, error)
	listSummaries func(ctx context.Context) ([]domain.TripTypeSummary, error)
}

func (m *mockTripTypeRepo) Upsert(ctx context.Context, name string) (domain.TripType, error) {
	return m.upsert(ctx, name)
}
func (m *mockTripTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripType, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripTypeRepo) ListSummaries(ctx context.Context) ([]domain.TripTypeSummary, error) {
	return m.listSummaries(ctx)
}

var _ repo.TripTypeRepo = (*mockTripTypeRepo)(nil)

type mockCustomerRepo struct {
	create        func(ctx context.Context, c domain.Customer) (domain.Customer, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	getByUsername func(ctx context.Context, username string) (domain.Customer, error)
	updateProfile func(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error)
}

func (m *mockCustomerRepo) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	return m.create(ctx, c)
}
func (m *mockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	return m.getByID(ctx, id)
}
func (m *mockCustomerRepo) GetByUsername(ctx context.Context, username string) (domain.Customer, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockCustomerRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error) {
	return m.updateProfile(ctx, id, upd)
}

var _ repo.CustomerRepo = (*mockCustomerRepo)(nil)

type mockWishlistRepo struct {
	upsert         func(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error)
	listByCustomer func(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error)
}

func (m *mockWishlistRepo) Upsert(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error) {
	return m.upsert(ctx, customerID, tripID, note)
}
func (m *mockWishlistRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error) {
	return m.listByCustomer(ctx, customerID)
}

var _ repo.WishlistRepo = (*mockWishlistRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		SellerID:    uuid.New(),
		TripTypeID:  uuid.New(),
		Title:       "Serengeti Safari",
		NumOfNights: 7,
		Location:    "Tanzania",
		Price:       decimal.RequireFromString("499.99"),
		Quantity:    5,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func activeOrderFixture(customerID uuid.UUID) domain.Order {
	return domain.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Active:     true,
		CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

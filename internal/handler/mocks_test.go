package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/handler"
	"github.com/tripmarket/api/internal/middleware"
)

// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs; unset methods panic, exposing
// any unexpected service call.

type mockCartServicer struct {
	addTrip     func(ctx context.Context, customerID, tripID uuid.UUID) (domain.Order, error)
	viewCart    func(ctx context.Context, customerID uuid.UUID) (domain.Cart, error)
	removeItem  func(ctx context.Context, customerID, orderID, tripID, lineItemID uuid.UUID) error
	checkout    func(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, []domain.PaymentMethod, error)
	confirm     func(ctx context.Context, customerID, orderID, paymentMethodID uuid.UUID) (domain.OrderDetail, error)
	cancel      func(ctx context.Context, customerID, orderID uuid.UUID) error
	orderDetail func(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, error)
}

func (m *mockCartServicer) AddTrip(ctx context.Context, customerID, tripID uuid.UUID) (domain.Order, error) {
	return m.addTrip(ctx, customerID, tripID)
}
func (m *mockCartServicer) ViewCart(ctx context.Context, customerID uuid.UUID) (domain.Cart, error) {
	return m.viewCart(ctx, customerID)
}
func (m *mockCartServicer) RemoveItem(ctx context.Context, customerID, orderID, tripID, lineItemID uuid.UUID) error {
	return m.removeItem(ctx, customerID, orderID, tripID, lineItemID)
}
func (m *mockCartServicer) Checkout(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, []domain.PaymentMethod, error) {
	return m.checkout(ctx, customerID, orderID)
}
func (m *mockCartServicer) Confirm(ctx context.Context, customerID, orderID, paymentMethodID uuid.UUID) (domain.OrderDetail, error) {
	return m.confirm(ctx, customerID, orderID, paymentMethodID)
}
func (m *mockCartServicer) Cancel(ctx context.Context, customerID, orderID uuid.UUID) error {
	return m.cancel(ctx, customerID, orderID)
}
func (m *mockCartServicer) OrderDetail(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, error) {
	return m.orderDetail(ctx, customerID, orderID)
}

var _ handler.CartServicer = (*mockCartServicer)(nil)

type mockCatalogServicer struct {
	index          func(ctx context.Context) ([]domain.Trip, error)
	list           func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	sell           func(ctx context.Context, sellerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	search         func(ctx context.Context, query string) ([]domain.Trip, error)
	listBySeller   func(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error)
	deleteListing  func(ctx context.Context, sellerID, tripID uuid.UUID) error
	tripTypes      func(ctx context.Context) ([]domain.TripTypeSummary, error)
	tripsByType    func(ctx context.Context, typeID uuid.UUID) (domain.TripType, []domain.Trip, error)
	createTripType func(ctx context.Context, name string) (domain.TripType, error)
}

func (m *mockCatalogServicer) Index(ctx context.Context) ([]domain.Trip, error) {
	return m.index(ctx)
}
func (m *mockCatalogServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockCatalogServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockCatalogServicer) Sell(ctx context.Context, sellerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.sell(ctx, sellerID, trip)
}
func (m *mockCatalogServicer) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	return m.search(ctx, query)
}
func (m *mockCatalogServicer) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error) {
	return m.listBySeller(ctx, sellerID)
}
func (m *mockCatalogServicer) DeleteListing(ctx context.Context, sellerID, tripID uuid.UUID) error {
	return m.deleteListing(ctx, sellerID, tripID)
}
func (m *mockCatalogServicer) TripTypes(ctx context.Context) ([]domain.TripTypeSummary, error) {
	return m.tripTypes(ctx)
}
func (m *mockCatalogServicer) TripsByType(ctx context.Context, typeID uuid.UUID) (domain.TripType, []domain.Trip, error) {
	return m.tripsByType(ctx, typeID)
}
func (m *mockCatalogServicer) CreateTripType(ctx context.Context, name string) (domain.TripType, error) {
	return m.createTripType(ctx, name)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

type mockCustomerServicer struct {
	register      func(ctx context.Context, reg domain.Registration) (domain.Customer, error)
	authenticate  func(ctx context.Context, username, password string) (domain.Customer, error)
	profile       func(ctx context.Context, id uuid.UUID) (domain.Customer, []domain.Order, error)
	updateProfile func(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error)
}

func (m *mockCustomerServicer) Register(ctx context.Context, reg domain.Registration) (domain.Customer, error) {
	return m.register(ctx, reg)
}
func (m *mockCustomerServicer) Authenticate(ctx context.Context, username, password string) (domain.Customer, error) {
	return m.authenticate(ctx, username, password)
}
func (m *mockCustomerServicer) Profile(ctx context.Context, id uuid.UUID) (domain.Customer, []domain.Order, error) {
	return m.profile(ctx, id)
}
func (m *mockCustomerServicer) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error) {
	return m.updateProfile(ctx, id, upd)
}

var _ handler.CustomerServicer = (*mockCustomerServicer)(nil)

type mockPaymentServicer struct {
	add    func(ctx context.Context, customerID uuid.UUID, name, token string) (domain.PaymentMethod, error)
	list   func(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error)
	remove func(ctx context.Context, customerID, methodID uuid.UUID) error
}

func (m *mockPaymentServicer) Add(ctx context.Context, customerID uuid.UUID, name, token string) (domain.PaymentMethod, error) {
	return m.add(ctx, customerID, name, token)
}
func (m *mockPaymentServicer) List(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error) {
	return m.list(ctx, customerID)
}
func (m *mockPaymentServicer) Remove(ctx context.Context, customerID, methodID uuid.UUID) error {
	return m.remove(ctx, customerID, methodID)
}

var _ handler.PaymentServicer = (*mockPaymentServicer)(nil)

type mockWishlistServicer struct {
	add  func(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error)
	list func(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error)
}

func (m *mockWishlistServicer) Add(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error) {
	return m.add(ctx, customerID, tripID, note)
}
func (m *mockWishlistServicer) List(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error) {
	return m.list(ctx, customerID)
}

var _ handler.WishlistServicer = (*mockWishlistServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, customerID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockSessionIssuer struct {
	issue func(customerID uuid.UUID) (string, error)
}

func (m *mockSessionIssuer) Issue(customerID uuid.UUID) (string, error) { return m.issue(customerID) }

var _ handler.SessionIssuer = (*mockSessionIssuer)(nil)

// ---- helpers ---------------------------------------------------------------

// deps bundles the mocks a test wires into the router. Zero-value mocks are
// used for anything left nil.
type deps struct {
	cart      *mockCartServicer
	catalog   *mockCatalogServicer
	customers *mockCustomerServicer
	payments  *mockPaymentServicer
	wishlist  *mockWishlistServicer
	export    *mockExportServicer
	sessions  *mockSessionIssuer
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production. The auth middleware is
// replaced by one that injects authedCustomer into the context, so protected
// routes can be exercised without real tokens.
func newHTTPHandler(d deps, authedCustomer uuid.UUID) http.Handler {
	if d.cart == nil {
		d.cart = &mockCartServicer{}
	}
	if d.catalog == nil {
		d.catalog = &mockCatalogServicer{}
	}
	if d.customers == nil {
		d.customers = &mockCustomerServicer{}
	}
	if d.payments == nil {
		d.payments = &mockPaymentServicer{}
	}
	if d.wishlist == nil {
		d.wishlist = &mockWishlistServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	if d.sessions == nil {
		d.sessions = &mockSessionIssuer{
			issue: func(uuid.UUID) (string, error) { return "test-token", nil },
		}
	}

	srv := handler.NewServer(d.cart, d.catalog, d.customers, d.payments, d.wishlist, d.export, d.sessions)

	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithCustomerID(r.Context(), authedCustomer)))
		})
	}
	return srv.Routes(fakeAuth)
}

func cartFixture(orderID uuid.UUID) domain.Cart {
	return domain.Cart{
		OrderID: orderID,
		Items: []domain.CartItem{
			{LineItemID: uuid.New(), TripID: uuid.New(), Title: "Serengeti Safari", UnitPrice: decimal.RequireFromString("499.99")},
		},
		Total: decimal.RequireFromString("499.99"),
	}
}

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

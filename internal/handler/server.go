// Package handler implements the HTTP handlers for the Trip Market API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (cart.go, catalog.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
)

// CartServicer defines the cart/order lifecycle operations the handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type CartServicer interface {
	AddTrip(ctx context.Context, customerID, tripID uuid.UUID) (domain.Order, error)
	ViewCart(ctx context.Context, customerID uuid.UUID) (domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, orderID, tripID, lineItemID uuid.UUID) error
	Checkout(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, []domain.PaymentMethod, error)
	Confirm(ctx context.Context, customerID, orderID, paymentMethodID uuid.UUID) (domain.OrderDetail, error)
	Cancel(ctx context.Context, customerID, orderID uuid.UUID) error
	OrderDetail(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, error)
}

// CatalogServicer defines the browsing and listing-management operations.
type CatalogServicer interface {
	Index(ctx context.Context) ([]domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Sell(ctx context.Context, sellerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Search(ctx context.Context, query string) ([]domain.Trip, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Trip, error)
	DeleteListing(ctx context.Context, sellerID, tripID uuid.UUID) error
	TripTypes(ctx context.Context) ([]domain.TripTypeSummary, error)
	TripsByType(ctx context.Context, typeID uuid.UUID) (domain.TripType, []domain.Trip, error)
	CreateTripType(ctx context.Context, name string) (domain.TripType, error)
}

// CustomerServicer defines account and profile operations.
type CustomerServicer interface {
	Register(ctx context.Context, reg domain.Registration) (domain.Customer, error)
	Authenticate(ctx context.Context, username, password string) (domain.Customer, error)
	Profile(ctx context.Context, id uuid.UUID) (domain.Customer, []domain.Order, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.Customer, error)
}

// PaymentServicer defines payment method management operations.
type PaymentServicer interface {
	Add(ctx context.Context, customerID uuid.UUID, name, token string) (domain.PaymentMethod, error)
	List(ctx context.Context, customerID uuid.UUID) ([]domain.PaymentMethod, error)
	Remove(ctx context.Context, customerID, methodID uuid.UUID) error
}

// WishlistServicer defines trip bookmarking operations.
type WishlistServicer interface {
	Add(ctx context.Context, customerID, tripID uuid.UUID, note string) (domain.WishlistItem, error)
	List(ctx context.Context, customerID uuid.UUID) ([]domain.WishlistItem, error)
}

// ExportServicer defines the order-history export operation.
type ExportServicer interface {
	Export(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error)
}

// SessionIssuer signs session tokens for freshly authenticated customers.
// Implemented by auth.TokenIssuer.
type SessionIssuer interface {
	Issue(customerID uuid.UUID) (string, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	cart      CartServicer
	catalog   CatalogServicer
	customers CustomerServicer
	payments  PaymentServicer
	wishlist  WishlistServicer
	export    ExportServicer
	sessions  SessionIssuer
	validate  *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(cart CartServicer, catalog CatalogServicer, customers CustomerServicer,
	payments PaymentServicer, wishlist WishlistServicer, export ExportServicer,
	sessions SessionIssuer) *Server {
	return &Server{
		cart:      cart,
		catalog:   catalog,
		customers: customers,
		payments:  payments,
		wishlist:  wishlist,
		export:    export,
		sessions:  sessions,
		validate:  validator.New(),
	}
}

// Routes mounts every endpoint on a chi router. requireAuth guards the
// routes that act on behalf of a customer; browsing, registration, login,
// and health stay public.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public surface.
	r.Get("/healthz", s.GetHealth)
	r.Post("/register", s.Register)
	r.Post("/login", s.Login)
	r.Get("/", s.Index)
	r.Get("/trips", s.ListTrips)
	r.Get("/single_trip/{trip_id}", s.GetTrip)
	r.Get("/trip_types", s.ListTripTypes)
	r.Get("/trip_type_trips/{type_id}", s.GetTripsByType)
	r.Get("/search", s.Search)

	// Everything below acts as a specific customer.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/logout", s.Logout)
		r.Get("/profile", s.Profile)
		r.Put("/edit_settings", s.UpdateSettings)

		r.Post("/sell", s.SellTrip)
		r.Get("/user_trips", s.ListUserTrips)
		r.Post("/delete_user_trip", s.DeleteUserTrip)
		r.Post("/trip_types", s.CreateTripType)

		r.Post("/single_trip/{trip_id}", s.AddToWishlist)
		r.Get("/user_wishlist", s.ListWishlist)

		r.Post("/add_payment_type", s.AddPaymentMethod)
		r.Get("/user_payment_types", s.ListPaymentMethods)
		r.Post("/delete_payment_type", s.DeletePaymentMethod)

		r.Post("/add_to_cart/{trip_id}", s.AddToCart)
		r.Get("/cart", s.ViewCart)
		r.Post("/delete_trip_from_cart", s.DeleteTripFromCart)
		r.Post("/checkout/{order_id}", s.Checkout)
		r.Post("/order_confirmation", s.ConfirmOrder)
		r.Post("/final_order_view", s.CancelOrder)
		r.Get("/order_detail/{order_id}", s.GetOrderDetail)

		r.Get("/export", s.GetExport)
	})

	return r
}

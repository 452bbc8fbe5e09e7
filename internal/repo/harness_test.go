package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
	"github.com/tripmarket/api/testutil"
)

// testRepos bundles every repo backed by one shared transaction, because the
// schema's foreign keys mean most tests need a customer, a trip type, and a
// trip before they can exercise the repo under test.
type testRepos struct {
	customers repo.CustomerRepo
	trips     repo.TripRepo
	types     repo.TripTypeRepo
	orders    repo.OrderRepo
	payments  repo.PaymentMethodRepo
	wishlist  repo.WishlistRepo
}

// newTestRepos opens a transaction against the test database and returns all
// repos backed by it. The transaction is automatically rolled back when the
// test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain has already applied the
// migrations by the time any test runs.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test; no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		customers: repo.NewCustomerRepo(tx),
		trips:     repo.NewTripRepo(tx),
		types:     repo.NewTripTypeRepo(tx),
		orders:    repo.NewOrderRepo(tx),
		payments:  repo.NewPaymentMethodRepo(tx),
		wishlist:  repo.NewWishlistRepo(tx),
	}
}

// mustCustomer inserts a customer fixture and returns the persisted record.
func mustCustomer(t *testing.T, r testRepos, username string) domain.Customer {
	t.Helper()
	c, err := r.customers.Create(context.Background(), domain.Customer{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefix",
		FirstName:    "Test",
		LastName:     "Customer",
	})
	require.NoError(t, err, "create customer fixture")
	return c
}

// mustTrip inserts a trip type and a trip owned by seller, returning the trip.
func mustTrip(t *testing.T, r testRepos, seller domain.Customer, title string, price string, quantity int) domain.Trip {
	t.Helper()
	ctx := context.Background()

	tt, err := r.types.Upsert(ctx, "Safari")
	require.NoError(t, err, "upsert trip type fixture")

	trip, err := r.trips.Create(ctx, domain.Trip{
		SellerID:    seller.ID,
		TripTypeID:  tt.ID,
		Title:       title,
		NumOfNights: 7,
		Location:    "Tanzania",
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
	})
	require.NoError(t, err, "create trip fixture")
	return trip
}

// mustPaymentMethod inserts a payment method for the customer.
func mustPaymentMethod(t *testing.T, r testRepos, c domain.Customer) domain.PaymentMethod {
	t.Helper()
	pm, err := r.payments.Create(context.Background(), domain.PaymentMethod{
		CustomerID: c.ID,
		Name:       "visa",
		Token:      "tok_a1B2c3D4e5F6",
	})
	require.NoError(t, err, "create payment method fixture")
	return pm
}

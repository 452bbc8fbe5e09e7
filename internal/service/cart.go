// Package service contains the business logic for the Trip Market API.
// Services validate inputs, enforce ownership and business rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// CartService implements the cart/order lifecycle: a customer's open cart is
// created lazily, accumulates line items, and is either confirmed into a
// placed order or cancelled. It holds the trip and payment repos as well
// because adding an item snapshots the trip price and confirming requires a
// payment method owned by the buyer.
type CartService struct {
	orders   repo.OrderRepo
	trips    repo.TripRepo
	payments repo.PaymentMethodRepo
}

// NewCartService constructs a CartService backed by the provided repos.
func NewCartService(orders repo.OrderRepo, trips repo.TripRepo, payments repo.PaymentMethodRepo) *CartService {
	return &CartService{orders: orders, trips: trips, payments: payments}
}

// AddTrip puts one unit of a trip into the customer's cart, creating the
// cart if none is open. A trip with no remaining stock is silently skipped:
// the caller is still sent back to the cart, which simply does not contain
// the item. No inventory is reserved or mutated here; counters move only at
// confirmation.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *CartService) AddTrip(ctx context.Context, customerID, tripID uuid.UUID) (domain.Order, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("service.CartService.AddTrip: %w", err)
	}

	order, err := s.orders.GetOrCreateActive(ctx, customerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("service.CartService.AddTrip: %w", err)
	}

	if trip.Quantity <= 0 {
		// Sold out: no line item, no error.
		return order, nil
	}

	if _, err := s.orders.AddLineItem(ctx, order.ID, trip.ID, trip.Price); err != nil {
		return domain.Order{}, fmt.Errorf("service.CartService.AddTrip: %w", err)
	}
	return order, nil
}

// ViewCart returns the customer's open cart, creating it if none exists.
// The total is the sum of the returned items' unit prices; an empty cart
// has total zero.
func (s *CartService) ViewCart(ctx context.Context, customerID uuid.UUID) (domain.Cart, error) {
	order, err := s.orders.GetOrCreateActive(ctx, customerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.ViewCart: %w", err)
	}

	items, err := s.orders.ListItems(ctx, order.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.ViewCart: %w", err)
	}

	return domain.Cart{
		OrderID: order.ID,
		Items:   items,
		Total:   domain.SumItems(items),
	}, nil
}

// RemoveItem deletes the line item identified by (lineItemID, tripID,
// orderID) from the customer's cart. When the exact triple matches nothing,
// every line item for that (trip, order) pair is removed instead; defined
// degraded behavior, not an error.
// Returns domain.ErrForbidden if the order belongs to another customer,
// domain.ErrConflict if the order is already placed.
func (s *CartService) RemoveItem(ctx context.Context, customerID, orderID, tripID, lineItemID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service.CartService.RemoveItem: %w", err)
	}
	if order.CustomerID != customerID {
		return fmt.Errorf("service.CartService.RemoveItem: %w", domain.ErrForbidden)
	}
	if !order.Active {
		return fmt.Errorf("service.CartService.RemoveItem: order already placed: %w", domain.ErrConflict)
	}

	if err := s.orders.DeleteLineItem(ctx, orderID, tripID, lineItemID); err != nil {
		return fmt.Errorf("service.CartService.RemoveItem: %w", err)
	}
	return nil
}

// Checkout assembles the data the checkout step needs: the order's
// recomputed total and the customer's stored payment methods. It performs no
// mutation. The total is always recomputed from persisted line items; a
// client-supplied total is never trusted.
// Returns domain.ErrForbidden if the order belongs to another customer.
func (s *CartService) Checkout(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, []domain.PaymentMethod, error) {
	detail, err := s.orderDetail(ctx, customerID, orderID)
	if err != nil {
		return domain.OrderDetail{}, nil, fmt.Errorf("service.CartService.Checkout: %w", err)
	}

	methods, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return domain.OrderDetail{}, nil, fmt.Errorf("service.CartService.Checkout: %w", err)
	}
	return detail, methods, nil
}

// Confirm places the customer's order with the given payment method. The
// inventory mutation and the order flag flip happen in one repo transaction:
// either the whole confirmation applies or none of it does.
// Returns domain.ErrForbidden if the order or the payment method belongs to
// another customer, domain.ErrConflict if the order is already placed.
func (s *CartService) Confirm(ctx context.Context, customerID, orderID, paymentMethodID uuid.UUID) (domain.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: %w", err)
	}
	if order.CustomerID != customerID {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: %w", domain.ErrForbidden)
	}
	if !order.Active {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: order already placed: %w", domain.ErrConflict)
	}

	method, err := s.payments.GetByID(ctx, paymentMethodID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: %w", err)
	}
	if method.CustomerID != customerID {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: payment method: %w", domain.ErrForbidden)
	}

	placed, err := s.orders.Confirm(ctx, orderID, paymentMethodID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: %w", err)
	}

	items, err := s.orders.ListItems(ctx, placed.ID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.Confirm: %w", err)
	}
	return domain.OrderDetail{Order: placed, Items: items, Total: domain.SumItems(items)}, nil
}

// Cancel deletes the customer's open cart outright; its line items go with
// it by cascade. Inventory is untouched; nothing was decremented for an open
// cart. A placed order is history and cannot be cancelled.
// Returns domain.ErrForbidden if the order belongs to another customer,
// domain.ErrConflict if the order is already placed.
func (s *CartService) Cancel(ctx context.Context, customerID, orderID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service.CartService.Cancel: %w", err)
	}
	if order.CustomerID != customerID {
		return fmt.Errorf("service.CartService.Cancel: %w", domain.ErrForbidden)
	}
	if !order.Active {
		return fmt.Errorf("service.CartService.Cancel: order already placed: %w", domain.ErrConflict)
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("service.CartService.Cancel: %w", err)
	}
	return nil
}

// OrderDetail returns the read-only view of one of the customer's orders,
// open or placed, with its items and recomputed total.
// Returns domain.ErrForbidden if the order belongs to another customer.
func (s *CartService) OrderDetail(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, error) {
	detail, err := s.orderDetail(ctx, customerID, orderID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("service.CartService.OrderDetail: %w", err)
	}
	return detail, nil
}

// orderDetail is the shared ownership-checked order view used by Checkout
// and OrderDetail.
func (s *CartService) orderDetail(ctx context.Context, customerID, orderID uuid.UUID) (domain.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if order.CustomerID != customerID {
		return domain.OrderDetail{}, domain.ErrForbidden
	}

	items, err := s.orders.ListItems(ctx, order.ID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	return domain.OrderDetail{Order: order, Items: items, Total: domain.SumItems(items)}, nil
}

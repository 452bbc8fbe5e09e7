package handler

import (
	"net/http"

	"github.com/tripmarket/api/internal/domain"
)

type deleteCartItemRequest struct {
	TripID     string `json:"trip_id" validate:"required,uuid"`
	OrderID    string `json:"order_id" validate:"required,uuid"`
	LineItemID string `json:"line_item_id" validate:"required,uuid"`
}

type confirmOrderRequest struct {
	OrderID       string `json:"order_id" validate:"required,uuid"`
	PaymentTypeID string `json:"payment_type_id" validate:"required,uuid"`
}

type cancelOrderRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type checkoutResponse struct {
	Order          domain.OrderDetail      `json:"order"`
	PaymentMethods []paymentMethodResponse `json:"payment_methods"`
}

// AddToCart handles POST /add_to_cart/{trip_id}.
// On success, including the silent no-op when the trip is sold out, it
// redirects to the cart view.
func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	tripID, err := pathUUID(r, "trip_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if _, err := s.cart.AddTrip(r.Context(), cid, tripID); err != nil {
		writeDomainError(w, r, err, "trip not found")
		return
	}

	seeOther(w, r, "/cart")
}

// ViewCart handles GET /cart.
// The cart is created on first view if the customer has no active order.
func (s *Server) ViewCart(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	cart, err := s.cart.ViewCart(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "cart not found")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// DeleteTripFromCart handles POST /delete_trip_from_cart.
// Removes one unit of a trip from the active cart, then redirects back to it.
func (s *Server) DeleteTripFromCart(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req deleteCartItemRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	orderID := mustUUID(req.OrderID)
	tripID := mustUUID(req.TripID)
	itemID := mustUUID(req.LineItemID)

	if err := s.cart.RemoveItem(r.Context(), cid, orderID, tripID, itemID); err != nil {
		writeDomainError(w, r, err, "line item not found")
		return
	}

	seeOther(w, r, "/cart")
}

// Checkout handles POST /checkout/{order_id}.
// It is a read-only review step: the order summary plus the customer's
// saved payment methods. Nothing is mutated until order confirmation.
func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	orderID, err := pathUUID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	detail, methods, err := s.cart.Checkout(r.Context(), cid, orderID)
	if err != nil {
		writeDomainError(w, r, err, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Order:          detail,
		PaymentMethods: paymentMethodsToResponse(methods),
	})
}

// ConfirmOrder handles POST /order_confirmation.
// This is the one-way transition from cart to placed order: inventory is
// adjusted and the cart flag is cleared in a single transaction.
func (s *Server) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req confirmOrderRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	detail, err := s.cart.Confirm(r.Context(), cid, mustUUID(req.OrderID), mustUUID(req.PaymentTypeID))
	if err != nil {
		writeDomainError(w, r, err, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// CancelOrder handles POST /final_order_view.
// Cancelling an active cart deletes the order and its line items outright;
// placed orders cannot be cancelled. Redirects to the storefront.
func (s *Server) CancelOrder(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req cancelOrderRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if err := s.cart.Cancel(r.Context(), cid, mustUUID(req.OrderID)); err != nil {
		writeDomainError(w, r, err, "order not found")
		return
	}

	seeOther(w, r, "/")
}

// GetOrderDetail handles GET /order_detail/{order_id}.
func (s *Server) GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	orderID, err := pathUUID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	detail, err := s.cart.OrderDetail(r.Context(), cid, orderID)
	if err != nil {
		writeDomainError(w, r, err, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

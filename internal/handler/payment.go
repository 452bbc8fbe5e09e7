package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
)

type addPaymentMethodRequest struct {
	Name  string `json:"payment_type_name" validate:"required,max=15"`
	Token string `json:"token" validate:"required"`
}

type deletePaymentMethodRequest struct {
	PaymentTypeID string `json:"payment_type_id" validate:"required,uuid"`
}

// paymentMethodResponse never exposes the raw token, only its masked form.
type paymentMethodResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}

func paymentMethodToResponse(m domain.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Token:      m.MaskedToken(),
		CreatedAt:  m.CreatedAt,
	}
}

func paymentMethodsToResponse(methods []domain.PaymentMethod) []paymentMethodResponse {
	out := make([]paymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = paymentMethodToResponse(m)
	}
	return out
}

// AddPaymentMethod handles POST /add_payment_type.
func (s *Server) AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req addPaymentMethodRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.payments.Add(r.Context(), cid, req.Name, req.Token)
	if err != nil {
		writeDomainError(w, r, err, "payment method not found")
		return
	}

	writeJSON(w, http.StatusCreated, paymentMethodToResponse(created))
}

// ListPaymentMethods handles GET /user_payment_types.
func (s *Server) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	methods, err := s.payments.List(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, paymentMethodsToResponse(methods))
}

// DeletePaymentMethod handles POST /delete_payment_type.
// A method referenced by a placed order cannot be deleted; that surfaces
// as a 409.
func (s *Server) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req deletePaymentMethodRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if err := s.payments.Remove(r.Context(), cid, mustUUID(req.PaymentTypeID)); err != nil {
		writeDomainError(w, r, err, "payment method not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

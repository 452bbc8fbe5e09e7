package handler

import (
	"net/http"

	"github.com/tripmarket/api/internal/domain"
)

type editSettingsRequest struct {
	FirstName     string `json:"first_name" validate:"max=100"`
	LastName      string `json:"last_name" validate:"max=100"`
	Phone         string `json:"phone" validate:"max=30"`
	StreetAddress string `json:"street_address" validate:"max=200"`
}

type profileResponse struct {
	Customer domain.Customer `json:"customer"`
	Orders   []domain.Order  `json:"orders"`
}

// Profile handles GET /profile: the customer's account details plus their
// placed-order history.
func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	c, orders, err := s.customers.Profile(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "customer not found")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Customer: c, Orders: orders})
}

// UpdateSettings handles PUT /edit_settings.
// All profile fields are overwritten as given; an omitted field clears the
// stored value.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req editSettingsRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	updated, err := s.customers.UpdateProfile(r.Context(), cid, domain.ProfileUpdate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		StreetAddress: req.StreetAddress,
	})
	if err != nil {
		writeDomainError(w, r, err, "customer not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

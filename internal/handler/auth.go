package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/middleware"
)

// customerID pulls the authenticated customer out of the request context.
// The auth middleware guarantees it is present on protected routes, so a
// missing value means a wiring bug rather than a client error.
func customerID(r *http.Request) (uuid.UUID, bool) {
	return middleware.CustomerID(r.Context())
}

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token    string          `json:"token"`
	Customer domain.Customer `json:"customer"`
}

// Register handles POST /register.
// It creates the account and immediately issues a session token, so a new
// customer does not need a separate login round trip.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.customers.Register(r.Context(), domain.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeDomainError(w, r, err, "customer not found")
		return
	}

	token, err := s.sessions.Issue(created.ID)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, Customer: created})
}

// Login handles POST /login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	c, err := s.customers.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err, "customer not found")
		return
	}

	token, err := s.sessions.Issue(c.ID)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Customer: c})
}

// Logout handles POST /logout.
// Sessions are stateless signed tokens, so there is nothing to revoke
// server-side; the client discards its token. The endpoint exists so
// clients have a uniform logout call.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

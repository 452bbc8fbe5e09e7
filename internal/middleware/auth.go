package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier validates a session token and returns the customer it
// identifies. Implemented by auth.TokenIssuer; defined here so the
// middleware can be tested with a stub.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// customerIDKey is the context key under which the authenticated customer's
// ID is stored. Unexported; access goes through CustomerID.
type customerIDKey struct{}

// NewAuthHandler returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. On success the customer ID is
// placed in the request context for CustomerID to read; otherwise the
// request is rejected with 401 before the handler runs.
func NewAuthHandler(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}
			customerID, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), customerIDKey{}, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerID returns the authenticated customer's ID from the request
// context. The second return is false when the request did not pass through
// NewAuthHandler.
func CustomerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(customerIDKey{}).(uuid.UUID)
	return id, ok
}

// WithCustomerID returns a context carrying the given customer ID.
// Intended for handler tests that bypass the auth middleware.
func WithCustomerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, customerIDKey{}, id)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header value.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"missing or invalid credentials"}}`))
}

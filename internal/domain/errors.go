package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed payment token).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when an authenticated customer attempts to act on
// a resource owned by someone else (another customer's order, payment method,
// or trip listing). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation is blocked by a referential rule:
// deleting a trip that has already been sold, or a payment method referenced
// by a placed order. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials are missing or invalid.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

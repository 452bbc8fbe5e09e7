// Package domain contains the core data types for the Trip Market API.
// This package has zero dependencies on other internal packages and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered account: the authentication identity plus the
// profile fields that ship with it. A customer can both sell trips and buy
// them; there is no separate seller type.
type Customer struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Registration carries the fields of a new account request.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate carries the mutable profile fields for an edit-settings
// request. All four fields are overwritten as given.
type ProfileUpdate struct {
	FirstName     string
	LastName      string
	Phone         string
	StreetAddress string
}

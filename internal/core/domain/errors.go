package domain

import "errors"

// Authentication failures. The token errors are kept distinct so that
// middleware and metrics can tell a stale session from a forged one, even
// though clients treat all of them as "log in again".
var (
	ErrMissingToken     = errors.New("missing authentication token")
	ErrMalformedToken   = errors.New("malformed authentication token")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpiredToken     = errors.New("token expired")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must never narrow it further in responses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Authorization failures.
var (
	ErrForbidden        = errors.New("access forbidden")
	ErrSelfModification = errors.New("cannot modify own account")
)

// Entity failures.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidRole         = errors.New("invalid role")
	ErrItemNotFound        = errors.New("item not found")
	ErrInvalidStatus       = errors.New("invalid item status")
	ErrMaintenanceNotFound = errors.New("maintenance record not found")
	ErrInvalidMaintenance  = errors.New("invalid maintenance type")
)

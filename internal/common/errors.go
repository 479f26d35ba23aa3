// Package common defines shared constants and sentinel errors used across
// the storefront components. Callers should use errors.Is to match these
// values; user-facing layers print the wrapped message as-is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal         = errors.New("internal error")
	ErrNotAuthenticated = errors.New("sign in to continue")

	// Credential and session errors surfaced to the user.
	ErrReservedIdentity   = errors.New("this email is reserved")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrMissingFields      = errors.New("please fill in all required fields")

	// Session token errors (invalid or malformed persisted session).
	ErrInvalidToken = errors.New("invalid session token")

	// Cart errors.
	ErrEmptyCart = errors.New("cart is empty")
)

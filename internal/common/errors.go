// Package common defines shared constants and sentinel errors used across
// the storage, service and CLI layers of ProfileKeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrMalformedStore  = errors.New("malformed store")
	ErrVersionConflict = errors.New("version conflict")

	// Account errors.
	ErrAccountExists        = errors.New("account already exists")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrNotAuthenticated     = errors.New("not authenticated")

	// Form input errors.
	ErrValidation = errors.New("validation error")

	// Remember token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

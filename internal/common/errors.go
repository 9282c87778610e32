// Package common defines shared constants and sentinel errors used across
// the Taskboard server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Request validation errors. Unexpected internal failures carry no
	// sentinel; they stay wrapped with their detail and default to 500 at
	// the HTTP boundary.
	ErrorValidation = errors.New("validation error")

	// Update builder errors.
	ErrNothingToUpdate = errors.New("nothing to update")

	// Credential and reset-code errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")

	// Token lifecycle errors.
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token expired")
)

package service

import (
	"errors"
	"fmt"
)

// Policy failures the HTTP layer branches on. Everything else that comes
// out of a service is infrastructure trouble and surfaces as a 500.
var (
	// ErrDuplicateAccount reports a signup collision on email or
	// username. Deliberately one error for both fields so signup does
	// not leak which one collided.
	ErrDuplicateAccount = errors.New("service: account already exists")

	// ErrUnauthorized covers bad credentials, unknown accounts and
	// missing sessions. Indistinguishable by design.
	ErrUnauthorized = errors.New("service: unauthorized")

	// ErrInvalidCode reports a wrong, expired or already-consumed OTP.
	ErrInvalidCode = errors.New("service: invalid or expired code")

	// ErrInvalidToken reports a bad or expired verification token.
	ErrInvalidToken = errors.New("service: invalid or expired token")

	// ErrInvalidRefresh reports a refresh token with no live session.
	ErrInvalidRefresh = errors.New("service: invalid or expired refresh token")
)

// ValidationError reports malformed input with the violated rule, meant to
// be surfaced to the end user as a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service: validation failed: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

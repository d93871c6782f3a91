// Package domain defines domain-level errors for the account feature.
package domain

import "errors"

// Domain errors for account operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrEmailTaken indicates that another user already owns the given email.
	// This is returned during registration and during profile updates that
	// change the email address.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	// This is typically returned during login or user lookup operations.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It deliberately does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingFields indicates that a required field was absent or empty.
	ErrMissingFields = errors.New("required field missing")

	// ErrSameEmail indicates that a profile update submitted the email the
	// caller already has.
	ErrSameEmail = errors.New("new email matches current email")
)

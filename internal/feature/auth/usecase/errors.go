// Package usecase implements the business logic for the auth feature.
package usecase

import "notes_backend/internal/shared/apperr"

var (
	// ErrMissingCredentials is returned by Register when the email or password is empty.
	ErrMissingCredentials = apperr.Validation("email and password are required")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte input limit.
	ErrPasswordTooLong = apperr.Validation("password must be at most 72 bytes")

	// ErrEmailAlreadyExists is returned when attempting to register an email that is already taken.
	ErrEmailAlreadyExists = apperr.Conflict("email already registered")

	// ErrUserNotFound is returned by repositories when no user matches the lookup.
	ErrUserNotFound = apperr.NotFound("user not found")

	// ErrInvalidCredentials is returned by Authenticate for an unknown email and for a
	// wrong password alike, so callers cannot tell the two apart.
	ErrInvalidCredentials = apperr.Auth("invalid credentials")
)

// Package usecase implements the business logic for the notes feature.
package usecase

import "notes_backend/internal/shared/apperr"

var (
	// ErrEmptyText is returned by Create when the text is empty after trimming.
	ErrEmptyText = apperr.Validation("text is required")

	// ErrNoteNotFound is returned when the note does not exist or belongs to another user.
	// The two cases are deliberately indistinguishable.
	ErrNoteNotFound = apperr.NotFound("note not found")
)

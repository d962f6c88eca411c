package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notes_backend/internal/feature/notes/domain/entity"
	"notes_backend/internal/shared/apperr"
)

// NoteRepository abstracts the persistence layer for notes.
// Every method is scoped to the owning user.
type NoteRepository interface {
	// ListByUser returns the user's notes, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Note, error)

	// Create persists the note and sets its ID.
	Create(ctx context.Context, note *entity.Note) error

	// DeleteOwned removes the note matching both noteID and userID in one statement.
	// It returns ErrNoteNotFound if no row matched.
	DeleteOwned(ctx context.Context, userID, noteID uint) error
}

// Option configures a notesUsecase.
type Option func(*notesUsecase)

// WithClock overrides the clock used to stamp new notes.
func WithClock(now func() time.Time) Option {
	return func(u *notesUsecase) { u.now = now }
}

// notesUsecase implements ownership-scoped note operations.
type notesUsecase struct {
	notes NoteRepository
	now   func() time.Time
}

// NewNotesUsecase creates a new notesUsecase.
func NewNotesUsecase(notes NoteRepository, opts ...Option) *notesUsecase {
	u := &notesUsecase{
		notes: notes,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// List returns all notes owned by userID, newest first. A user with no notes gets an empty slice.
func (u *notesUsecase) List(ctx context.Context, userID uint) ([]entity.Note, error) {
	notes, err := u.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to list notes: %w", err))
	}
	if notes == nil {
		notes = []entity.Note{}
	}
	return notes, nil
}

// Create trims text and stores it as a new note owned by userID.
func (u *notesUsecase) Create(ctx context.Context, userID uint, text string) (*entity.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	note := &entity.Note{
		UserID:    userID,
		Text:      text,
		CreatedAt: u.now().UTC(),
	}
	if err := u.notes.Create(ctx, note); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create note: %w", err))
	}
	return note, nil
}

// Delete permanently removes the caller's note and returns its id.
func (u *notesUsecase) Delete(ctx context.Context, userID, noteID uint) (uint, error) {
	if noteID == 0 {
		return 0, ErrNoteNotFound
	}
	if err := u.notes.DeleteOwned(ctx, userID, noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return 0, err
		}
		return 0, apperr.Internal(fmt.Errorf("failed to delete note: %w", err))
	}
	return noteID, nil
}

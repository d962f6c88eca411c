package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes_backend/internal/feature/notes/domain/entity"
	"notes_backend/internal/feature/notes/usecase"
	"notes_backend/internal/shared/apperr"
)

// ErrDB is a sentinel shared between mocks and expectations.
var ErrDB = errors.New("database error")

// mockNoteRepository is a mock implementation of the NoteRepository interface.
type mockNoteRepository struct {
	ListByUserFunc  func(ctx context.Context, userID uint) ([]entity.Note, error)
	CreateFunc      func(ctx context.Context, note *entity.Note) error
	DeleteOwnedFunc func(ctx context.Context, userID, noteID uint) error
	CreateCalls     int
	DeleteCalls     int
}

func (m *mockNoteRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Note, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, errors.New("ListByUserFunc is not implemented")
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	return errors.New("CreateFunc is not implemented")
}

func (m *mockNoteRepository) DeleteOwned(ctx context.Context, userID, noteID uint) error {
	m.DeleteCalls++
	if m.DeleteOwnedFunc != nil {
		return m.DeleteOwnedFunc(ctx, userID, noteID)
	}
	return errors.New("DeleteOwnedFunc is not implemented")
}

func TestNotesUsecase_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stored := []entity.Note{{ID: 2, UserID: 7, Text: "b"}, {ID: 1, UserID: 7, Text: "a"}}

	tests := []struct {
		name     string
		listFunc func(ctx context.Context, userID uint) ([]entity.Note, error)
		want     []entity.Note
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "returns repository order",
			listFunc: func(ctx context.Context, userID uint) ([]entity.Note, error) {
				return stored, nil
			},
			want: stored,
		},
		{
			name: "nil becomes empty slice",
			listFunc: func(ctx context.Context, userID uint) ([]entity.Note, error) {
				return nil, nil
			},
			want: []entity.Note{},
		},
		{
			name: "storage failure is internal",
			listFunc: func(ctx context.Context, userID uint) ([]entity.Note, error) {
				return nil, ErrDB
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewNotesUsecase(&mockNoteRepository{ListByUserFunc: tt.listFunc})
			got, err := uc.List(ctx, 7)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDB)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotesUsecase_Create(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.FixedZone("JST", 9*3600))

	t.Run("trims text and stamps UTC time", func(t *testing.T) {
		t.Parallel()

		repo := &mockNoteRepository{CreateFunc: func(ctx context.Context, note *entity.Note) error {
			note.ID = 1
			return nil
		}}
		uc := usecase.NewNotesUsecase(repo, usecase.WithClock(func() time.Time { return fixed }))

		note, err := uc.Create(context.Background(), 7, "  buy milk \n")
		require.NoError(t, err)
		assert.Equal(t, uint(1), note.ID)
		assert.Equal(t, uint(7), note.UserID)
		assert.Equal(t, "buy milk", note.Text)
		assert.Equal(t, time.UTC, note.CreatedAt.Location())
		assert.True(t, fixed.Equal(note.CreatedAt))
	})

	blanks := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n"},
	}
	for _, b := range blanks {
		b := b
		t.Run("rejects "+b.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockNoteRepository{}
			_, err := usecase.NewNotesUsecase(repo).Create(context.Background(), 7, b.text)
			assert.ErrorIs(t, err, usecase.ErrEmptyText)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Zero(t, repo.CreateCalls)
		})
	}

	t.Run("storage failure is internal", func(t *testing.T) {
		t.Parallel()

		repo := &mockNoteRepository{CreateFunc: func(ctx context.Context, note *entity.Note) error { return ErrDB }}
		_, err := usecase.NewNotesUsecase(repo).Create(context.Background(), 7, "x")
		assert.ErrorIs(t, err, ErrDB)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestNotesUsecase_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		noteID     uint
		deleteFunc func(ctx context.Context, userID, noteID uint) error
		wantID     uint
		wantErr    error
		wantCalls  int
	}{
		{
			name:   "owned note",
			noteID: 5,
			deleteFunc: func(ctx context.Context, userID, noteID uint) error {
				if userID != 7 || noteID != 5 {
					return usecase.ErrNoteNotFound
				}
				return nil
			},
			wantID:    5,
			wantCalls: 1,
		},
		{
			name:   "missing or not owned",
			noteID: 9,
			deleteFunc: func(ctx context.Context, userID, noteID uint) error {
				return usecase.ErrNoteNotFound
			},
			wantErr:   usecase.ErrNoteNotFound,
			wantCalls: 1,
		},
		{
			name:    "zero id never reaches storage",
			noteID:  0,
			wantErr: usecase.ErrNoteNotFound,
		},
		{
			name:   "storage failure",
			noteID: 5,
			deleteFunc: func(ctx context.Context, userID, noteID uint) error {
				return ErrDB
			},
			wantErr:   ErrDB,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockNoteRepository{DeleteOwnedFunc: tt.deleteFunc}
			id, err := usecase.NewNotesUsecase(repo).Delete(context.Background(), 7, tt.noteID)

			assert.Equal(t, tt.wantCalls, repo.DeleteCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

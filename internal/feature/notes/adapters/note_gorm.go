// Package adapters provides repository implementations for the notes feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/feature/notes/domain/entity"
	"notes_backend/internal/feature/notes/usecase"
)

// NoteModel is the "notes" table. The User association exists only so that
// AutoMigrate emits the foreign key to users(id).
type NoteModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;index"`
	User      authentity.User `gorm:"constraint:OnDelete:CASCADE"`
	Text      string          `gorm:"type:text;not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (NoteModel) TableName() string {
	return "notes"
}

func toModel(e *entity.Note) NoteModel {
	return NoteModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
}

// ToEntity converts a row to the domain entity, normalizing the timestamp to UTC.
func (m NoteModel) ToEntity() entity.Note {
	return entity.Note{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type noteGorm struct {
	db *gorm.DB
}

var _ usecase.NoteRepository = (*noteGorm)(nil)

func NewNoteGorm(db *gorm.DB) *noteGorm {
	return &noteGorm{db: db}
}

// ListByUser orders by creation time, then id, so notes created within the same
// clock tick still come back newest first.
func (r *noteGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Note, error) {
	var rows []NoteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Note, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

func (r *noteGorm) Create(ctx context.Context, note *entity.Note) error {
	if note == nil {
		return errors.New("note must not be nil")
	}
	m := toModel(note)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return err
	}
	note.ID = m.ID
	note.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// DeleteOwned is a single DELETE filtered on both id and owner; zero affected rows
// means the note is missing or belongs to someone else.
func (r *noteGorm) DeleteOwned(ctx context.Context, userID, noteID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&NoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}

package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notesadapters "notes_backend/internal/feature/notes/adapters"
	notesusecase "notes_backend/internal/feature/notes/usecase"
	"notes_backend/internal/platform/cache"
)

// NewNoteRepository creates a NoteRepository implementation.
// If Redis is available, the gorm repository is wrapped with the list cache.
// Otherwise the gorm repository is used directly.
func NewNoteRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) notesusecase.NoteRepository {
	repo := notesadapters.NewNoteGorm(db)
	if rdb != nil {
		return cache.NewCachingNoteRepository(rdb, ttl, repo, "notes")
	}
	return repo
}

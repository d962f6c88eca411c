// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"notes_backend/internal/app/router"
	"notes_backend/internal/config"
	authadapters "notes_backend/internal/feature/auth/adapters"
	authentity "notes_backend/internal/feature/auth/domain/entity"
	authhandler "notes_backend/internal/feature/auth/transport/handler"
	authusecase "notes_backend/internal/feature/auth/usecase"
	notesadapters "notes_backend/internal/feature/notes/adapters"
	noteshandler "notes_backend/internal/feature/notes/transport/handler"
	notesusecase "notes_backend/internal/feature/notes/usecase"
	"notes_backend/internal/platform/http/validation"
	jwtmw "notes_backend/internal/platform/jwt"
)

// Models lists every table the application owns, in dependency order.
func Models() []any {
	return []any{
		&authentity.User{},
		&notesadapters.NoteModel{},
	}
}

// NewEngine wires repositories, use cases and handlers into a ready gin engine.
// rdb may be nil, in which case note listing is not cached.
func NewEngine(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	tokens := jwtmw.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	noteRepo := NewNoteRepository(rdb, db, cfg.NotesCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, authusecase.WithHashCost(cfg.BcryptCost))
	notesUC := notesusecase.NewNotesUsecase(noteRepo)

	// Handler
	engine := router.NewRouter(router.Deps{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
		Identity:       tokens,
		Auth:           authhandler.NewAuthHandler(authUC),
		Notes:          noteshandler.NewNoteHandler(notesUC),
	})
	return engine, nil
}

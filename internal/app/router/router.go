// Package router assembles the HTTP routes.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "notes_backend/internal/feature/auth/transport/handler"
	noteshandler "notes_backend/internal/feature/notes/transport/handler"
	"notes_backend/internal/platform/http/handler"
	"notes_backend/internal/platform/http/middleware"
	jwtmw "notes_backend/internal/platform/jwt"
)

// Deps carries everything the router needs.
type Deps struct {
	APIPrefix      string
	AllowedOrigins []string
	Logger         *slog.Logger
	Identity       jwtmw.IdentityResolver
	Auth           *authhandler.AuthHandler
	Notes          *noteshandler.NoteHandler
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.AllowedOrigins))

	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group(d.APIPrefix)

	// no auth
	api.GET("/health", handler.Health)
	api.HEAD("/health", handler.Health)
	api.OPTIONS("/health", handler.Health)
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	// bearer token required
	notes := api.Group("/notes")
	notes.Use(jwtmw.AuthRequired(d.Identity))
	{
		notes.GET("", d.Notes.List)
		notes.POST("", d.Notes.Create)
		notes.DELETE("/:id", d.Notes.Delete)
	}

	return r
}

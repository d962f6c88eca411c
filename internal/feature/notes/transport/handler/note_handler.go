// Package handler provides HTTP handlers for the notes feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"notes_backend/internal/feature/notes/domain/entity"
	"notes_backend/internal/feature/notes/transport/http/dto"
	"notes_backend/internal/feature/notes/usecase"
	"notes_backend/internal/platform/http/middleware"
	"notes_backend/internal/platform/http/response"
	jwtmw "notes_backend/internal/platform/jwt"
	"notes_backend/internal/shared/apperr"
)

var errUnauthenticated = apperr.Auth("missing bearer token")

// NotesUsecase defines the ownership-scoped note operations.
type NotesUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Note, error)
	Create(ctx context.Context, userID uint, text string) (*entity.Note, error)
	Delete(ctx context.Context, userID, noteID uint) (uint, error)
}

// NoteHandler handles HTTP requests for /notes. Every route expects
// jwtmw.AuthRequired to have run first.
type NoteHandler struct {
	notes NotesUsecase
}

func NewNoteHandler(notes NotesUsecase) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// List handles GET /notes.
func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Error(c, errUnauthenticated)
		return
	}

	notes, err := h.notes.List(c.Request.Context(), userID)
	if err != nil {
		middleware.RecordOperation("note_list", apperr.KindOf(err).String())
		response.Error(c, err)
		return
	}

	middleware.RecordOperation("note_list", "ok")
	c.JSON(http.StatusOK, dto.ToNoteResList(notes))
}

// Create handles POST /notes.
//   - 400 when text is missing or blank
//   - 201 with the created note
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Error(c, errUnauthenticated)
		return
	}

	var req dto.CreateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create note validation failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		middleware.RecordOperation("note_create", apperr.KindValidation.String())
		response.Error(c, usecase.ErrEmptyText)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		middleware.RecordOperation("note_create", apperr.KindOf(err).String())
		response.Error(c, err)
		return
	}

	middleware.RecordOperation("note_create", "ok")
	c.JSON(http.StatusCreated, dto.ToNoteRes(*note))
}

// Delete handles DELETE /notes/:id.
// An id that is not a positive integer cannot name a note and is answered with 404.
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Error(c, errUnauthenticated)
		return
	}

	var noteID uint
	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &noteID); err != nil {
		middleware.RecordOperation("note_delete", apperr.KindNotFound.String())
		response.Error(c, usecase.ErrNoteNotFound)
		return
	}

	id, err := h.notes.Delete(c.Request.Context(), userID, noteID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			slog.Warn("delete note failed", "error", err, "user_id", userID, "note_id", noteID, "remote_addr", c.ClientIP())
		}
		middleware.RecordOperation("note_delete", apperr.KindOf(err).String())
		response.Error(c, err)
		return
	}

	middleware.RecordOperation("note_delete", "ok")
	c.JSON(http.StatusOK, dto.DeleteNoteRes{Message: "deleted", ID: id})
}

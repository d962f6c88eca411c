// Package response writes JSON error bodies for classified errors.
package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/shared/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error writes {"error": msg} with the status implied by err's kind and aborts the chain.
// Internal errors are logged with their cause and answered with a generic message.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{Error: apperr.PublicMessage(err)})
}

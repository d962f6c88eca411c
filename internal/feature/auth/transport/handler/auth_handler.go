// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/feature/auth/transport/http/dto"
	"notes_backend/internal/platform/http/middleware"
	"notes_backend/internal/platform/http/response"
	"notes_backend/internal/shared/apperr"
)

var (
	errRegisterBody = apperr.Validation("email and password are required")
	errInvalidBody  = apperr.Validation("invalid request body")
)

// AuthUsecase defines the use case for authentication operations.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user with the given email and password.
	Register(ctx context.Context, email, password string) (*entity.User, error)
	// Login authenticates the user and returns a signed access token on success.
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
//   - 400 when email or password is missing
//   - 409 when the email is already registered
//   - 201 with the public user view on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		middleware.RecordOperation("register", apperr.KindValidation.String())
		response.Error(c, errRegisterBody)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		middleware.RecordOperation("register", apperr.KindOf(err).String())
		response.Error(c, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	middleware.RecordOperation("register", "ok")
	c.JSON(http.StatusCreated, dto.RegisterRes{Message: "registered", User: dto.ToUserRes(user)})
}

// Login handles POST /auth/login.
//   - 400 when the body is not valid JSON
//   - 401 on any credential failure, without saying which part was wrong
//   - 200 with an access token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		middleware.RecordOperation("login", apperr.KindValidation.String())
		response.Error(c, errInvalidBody)
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		middleware.RecordOperation("login", apperr.KindOf(err).String())
		response.Error(c, err)
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	middleware.RecordOperation("login", "ok")
	c.JSON(http.StatusOK, dto.LoginRes{AccessToken: token, User: dto.ToUserRes(user)})
}

package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/shared/apperr"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// IdentityResolver turns a bearer token into a user id.
type IdentityResolver interface {
	ResolveIdentity(token string) (uint, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
func AuthRequired(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		userID, err := resolver.ResolveIdentity(tokenStr)
		if err != nil {
			msg := "invalid token"
			if apperr.KindOf(err) == apperr.KindAuth {
				msg = apperr.PublicMessage(err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/types"
)

// ContextIdentity is the gin context key holding the caller's types.Identity
const ContextIdentity = "identity"

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens. Requests
// without a valid bearer token are answered with 401 before any handler runs.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "missing authorization header"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set(ContextIdentity, claims.Identity())
		c.Next()
	}
}

// IdentityFromContext returns the caller stored by AuthMiddleware
func IdentityFromContext(c *gin.Context) (types.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return types.Identity{}, false
	}
	id, ok := v.(types.Identity)
	return id, ok && id.UserID != 0
}

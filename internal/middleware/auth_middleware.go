package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/pkg/auth"
)

// Context keys set by SessionRequired
const (
	ContextClaims   = "claims"
	ContextUsername = "username"
)

// AuthMiddleware gates the admin console
type AuthMiddleware struct {
	console services.ConsoleService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(console services.ConsoleService) *AuthMiddleware {
	return &AuthMiddleware{console: console}
}

// TokenFromRequest reads the session token from the Authorization header,
// falling back to the token query parameter used by WebSocket clients
func TokenFromRequest(c *gin.Context) string {
	header := strings.Trim(c.GetHeader("Authorization"), "\"'")
	if header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			token, _ := auth.ExtractBearerToken(header)
			return token
		}
		// a bare JWT without the scheme
		if strings.Count(header, ".") == 2 && !strings.Contains(header, " ") {
			return header
		}
		return ""
	}
	return c.Query("token")
}

// SessionRequired rejects requests without a live console session
func (m *AuthMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.console.Authenticate(token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by SessionRequired
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

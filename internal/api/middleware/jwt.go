package middleware

import (
	"net/http"
	"strings"

	"github.com/Prince260602/internhubs/internal/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// TokenHeader is the legacy header the frontend still sends.
const TokenHeader = "auth-token"

const msgUnauthenticated = "User not authenticated"

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// JWTAuth accepts "Authorization: Bearer <token>" or the auth-token header.
func JWTAuth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			raw = strings.TrimSpace(c.GetHeader(TokenHeader))
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthenticated})
			return
		}

		claims, err := p.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthenticated})
			return
		}

		role := claims.Role
		if role == "" {
			role = "user"
		}
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	"github.com/drivelane/carmarket/internal/domain/auth/jwt"
	"github.com/drivelane/carmarket/internal/domain/auth/model"
)

const identityKey = "auth.identity"

// bearerToken pulls the token out of "Authorization: Bearer <token>".
// A missing header or a different scheme both read as "no token".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a verifiable access token. An expired
// token answers 401 with expired=true so clients know to try /auth/refresh;
// any other verification failure is a hard 403.
func RequireAuth(codec jwt.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := codec.ValidateAccessToken(token)
		switch {
		case customErrors.IsTokenExpired(err):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired", "expired": true})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// RequireAdmin composes after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid access token happens to be
// present and silently proceeds without one otherwise. Public endpoints use
// it to personalize output for callers that are logged in.
func OptionalAuth(codec jwt.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := codec.ValidateAccessToken(token); err == nil {
				c.Set(identityKey, claims.Identity())
			}
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(model.Identity)
	if !ok {
		return nil, false
	}
	return &id, true
}

package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"go.uber.org/zap"
)

const (
	principalKey   = "principal"
	bearerTokenKey = "bearer_token"
)

// RevocationChecker reports whether a token was revoked by logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware verifies the bearer token and injects the principal into
// the gin context. Revoked tokens are rejected like invalid ones.
func AuthMiddleware(verifier auth.Verifier, revoked RevocationChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWith(c, err)
			return
		}

		ctx := c.Request.Context()
		isRevoked, err := revoked.IsRevoked(ctx, token)
		if err != nil {
			// Fail closed when the revocation list is unreachable.
			log.Error("revocation check failed", zap.Error(err))
			abortWith(c, err)
			return
		}
		if isRevoked {
			abortWith(c, apperror.Unauthorized("token has been revoked"))
			return
		}

		principal, err := verifier.Verify(ctx, token)
		if err != nil {
			abortWith(c, apperror.Unauthorized("invalid or expired token").WithCause(err))
			return
		}

		c.Set(principalKey, *principal)
		c.Set(bearerTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.Unauthorized("authorization header required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.Unauthorized("invalid authorization format, use: Bearer <token>")
	}
	return strings.TrimSpace(parts[1]), nil
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// GetPrincipal returns the principal set by AuthMiddleware. Outside an
// authenticated route it is the zero value, which services reject with 401.
func GetPrincipal(c *gin.Context) auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}

// GetBearerToken returns the raw token the request authenticated with
func GetBearerToken(c *gin.Context) string {
	return c.GetString(bearerTokenKey)
}

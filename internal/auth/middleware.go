package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/entities"
)

// ContextKeyUser holds the resolved *entities.User for the current request.
const ContextKeyUser = "auth_user"

// TokenResolver turns a bearer token into its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, raw string) (*entities.User, error)
}

// Middleware authenticates bearer-token requests.
type Middleware struct {
	resolver TokenResolver
	log      *zap.Logger
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(resolver TokenResolver, log *zap.Logger) *Middleware {
	return &Middleware{
		resolver: resolver,
		log:      log.Named("auth"),
	}
}

// RequireUser rejects the request with 401 unless it carries a valid bearer
// token for a live user. Identity is resolved on every request.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		user, err := m.resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthenticated) {
				m.log.Error("failed to resolve token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Internal server error",
				})
				return
			}
			m.log.Debug("rejected bearer token", zap.Error(err))
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser, or nil.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   ErrNotAuthenticated.Message,
	})
}

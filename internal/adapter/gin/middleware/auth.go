package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"article-api/internal/domain/user"
	apperrors "article-api/pkg/errors"
	"article-api/pkg/logger"
)

// Authenticator resolves a bearer token to the user holding it
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token.
// On success the user is attached to the request context.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := auth.Authenticate(c.Request.Context(), BearerToken(c))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		attachUser(c, u)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var authErr *apperrors.AuthenticationError
			if !errors.As(err, &authErr) {
				_ = c.Error(err)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		attachUser(c, u)
		c.Next()
	}
}

// CurrentUser returns the user attached by Authenticate or OptionalAuth
func CurrentUser(c *gin.Context) (*user.User, bool) {
	return user.FromContext(c.Request.Context())
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func attachUser(c *gin.Context, u *user.User) {
	ctx := user.NewContext(c.Request.Context(), u)
	ctx = logger.WithUserID(ctx, u.ID)
	c.Request = c.Request.WithContext(ctx)
}

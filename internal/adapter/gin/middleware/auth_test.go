package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"article-api/internal/domain/user"
	apperrors "article-api/pkg/errors"
	"article-api/pkg/logger"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func setupAuthRouter(t *testing.T, gate func(Authenticator) gin.HandlerFunc) (*gin.Engine, *MockAuthenticator) {
	gin.SetMode(gin.TestMode)
	auth := new(MockAuthenticator)

	r := gin.New()
	r.Use(ErrorHandler(zaptest.NewLogger(t)))
	r.GET("/user", gate(auth), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u.ID, "log_user": logger.GetUserID(c.Request.Context())})
	})
	return r, auth
}

func request(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		r, auth := setupAuthRouter(t, Authenticate)
		auth.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrUnauthenticated)

		w := request(r, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthenticated."}`, w.Body.String())
	})

	t.Run("unknown token", func(t *testing.T) {
		r, auth := setupAuthRouter(t, Authenticate)
		auth.On("Authenticate", mock.Anything, "nope").Return(nil, apperrors.ErrUnauthenticated)

		w := request(r, "Bearer nope")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthenticated."}`, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		r, auth := setupAuthRouter(t, Authenticate)
		auth.On("Authenticate", mock.Anything, "good").Return(&user.User{ID: 42}, nil)

		w := request(r, "bearer good")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":42,"log_user":"42"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		r, auth := setupAuthRouter(t, Authenticate)
		auth.On("Authenticate", mock.Anything, "good").Return(nil, errors.New("db down"))

		w := request(r, "Bearer good")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		r, auth := setupAuthRouter(t, OptionalAuth)

		w := request(r, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":null}`, w.Body.String())
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("unknown token passes through", func(t *testing.T) {
		r, auth := setupAuthRouter(t, OptionalAuth)
		auth.On("Authenticate", mock.Anything, "stale").Return(nil, apperrors.ErrUnauthenticated)

		w := request(r, "Bearer stale")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":null}`, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		r, auth := setupAuthRouter(t, OptionalAuth)
		auth.On("Authenticate", mock.Anything, "good").Return(&user.User{ID: 7}, nil)

		w := request(r, "Bearer good")

		assert.JSONEq(t, `{"user":7,"log_user":"7"}`, w.Body.String())
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"BEARER  abc ", "abc"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", tt.header)

			assert.Equal(t, tt.want, BearerToken(c))
		})
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "article-api/pkg/errors"
	"article-api/pkg/logger"
)

// Messages rendered for failures that carry no client-safe text of their own
const (
	MessageNotFound        = "Resource not found"
	MessageInternal        = "Internal server error"
	MessageTooManyAttempts = "Too Many Attempts."
)

// ErrorResponse is the JSON envelope for every failed request
type ErrorResponse struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// ErrorHandler renders the last error recorded with c.Error as JSON.
// It is the single place where typed errors become status codes.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := Translate(err)
		if status >= http.StatusInternalServerError {
			logger.WithContext(c.Request.Context(), log).Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// Translate maps an error onto its HTTP status and response body
func Translate(err error) (int, ErrorResponse) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		authErr       *apperrors.AuthenticationError
		existsErr     *apperrors.AlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.HTTPStatus(), ErrorResponse{Error: validationErr.Message, Errors: validationErr.Fields}
	case errors.As(err, &notFoundErr):
		return notFoundErr.HTTPStatus(), ErrorResponse{Error: MessageNotFound}
	case errors.As(err, &authErr):
		return authErr.HTTPStatus(), ErrorResponse{Error: authErr.Message}
	case errors.As(err, &existsErr):
		return existsErr.HTTPStatus(), ErrorResponse{Error: existsErr.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: MessageInternal}
	}
}

// NotFound answers unknown routes and methods
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: MessageNotFound})
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("field messages accumulate", func(t *testing.T) {
		err := NewValidationError("email", "The email field is required.")
		err.Add("email", "The email must be a valid email address.")
		err.Add("name", "The name field is required.")

		assert.True(t, err.HasErrors())
		assert.Equal(t, DefaultValidationMessage, err.Message)
		assert.Len(t, err.Fields["email"], 2)
		assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus())
		assert.Equal(t,
			"validation failed: email - The email field is required.; The email must be a valid email address., name - The name field is required.",
			err.Error(),
		)
	})

	t.Run("message without field", func(t *testing.T) {
		err := NewValidationError("", "bad input")

		assert.False(t, err.HasErrors())
		assert.Equal(t, "validation failed: bad input", err.Error())
	})
}

func TestTypedErrors_HTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NewNotFoundError("article", ""), http.StatusNotFound},
		{"authentication", NewAuthenticationError("Unauthenticated."), http.StatusUnauthorized},
		{"already exists", NewAlreadyExistsError("user", "email", ""), http.StatusConflict},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s HTTPStatuser
			require.True(t, errors.As(tt.err, &s))
			assert.Equal(t, tt.status, s.HTTPStatus())
		})
	}
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "article not found", NewNotFoundError("article", "").Error())
	assert.Equal(t, "Resource not found", ErrNotFound.Error())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("issue token: %w", NewInternalError("failed to persist token", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "issue token: failed to persist token: connection refused", err.Error())
}

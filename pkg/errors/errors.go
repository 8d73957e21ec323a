package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Common application errors
var (
	ErrNotFound        = NewNotFoundError("resource", "Resource not found")
	ErrUnauthenticated = NewAuthenticationError("Unauthenticated.")
	ErrInternal        = NewInternalError("Internal server error", nil)
)

// DefaultValidationMessage is the summary sent with every validation failure.
const DefaultValidationMessage = "The given data was invalid."

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

// NewValidationError creates a new validation error.
// An empty field produces an error without field details.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{
		Message: DefaultValidationMessage,
		Fields:  make(map[string][]string),
	}
	if field != "" {
		e.Add(field, message)
	} else if message != "" {
		e.Message = message
	}
	return e
}

// Add appends a message for a field
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field message was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}

	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s - %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// AuthenticationError represents a failed or missing authentication.
// The message is sent to the client verbatim, so it must not reveal
// which part of the credentials was wrong.
type AuthenticationError struct {
	Message string
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *AuthenticationError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// AlreadyExistsError represents a resource already exists error
type AlreadyExistsError struct {
	Resource string
	Field    string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, field, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Field:    field,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusConflict
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser is implemented by errors that know their HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

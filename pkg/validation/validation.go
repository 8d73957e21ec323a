package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "article-api/pkg/errors"
)

// New returns a validator that reports fields by their JSON names
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Translate converts validator.ValidationErrors into a field-keyed *errors.ValidationError.
// Any other error is returned unchanged.
func Translate(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &apperrors.ValidationError{Message: apperrors.DefaultValidationMessage}
	for _, e := range validationErrors {
		field, message := describe(e)
		out.Add(field, message)
	}
	return out
}

// Attribute turns a JSON field name into the form used in messages
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func describe(e validator.FieldError) (field, message string) {
	field = e.Field()
	attr := Attribute(field)

	switch e.Tag() {
	case "required":
		message = fmt.Sprintf("The %s field is required.", attr)
	case "email":
		message = fmt.Sprintf("The %s must be a valid email address.", attr)
	case "min":
		message = fmt.Sprintf("The %s must be at least %s characters.", attr, e.Param())
	case "max":
		message = fmt.Sprintf("The %s may not be greater than %s characters.", attr, e.Param())
	case "eqfield":
		// foo_confirmation mismatches are reported against foo
		field = strings.TrimSuffix(field, "_confirmation")
		message = fmt.Sprintf("The %s confirmation does not match.", Attribute(field))
	case "gte":
		message = fmt.Sprintf("The %s must be at least %s.", attr, e.Param())
	case "lte":
		message = fmt.Sprintf("The %s may not be greater than %s.", attr, e.Param())
	default:
		message = fmt.Sprintf("The %s is invalid.", attr)
	}
	return field, message
}

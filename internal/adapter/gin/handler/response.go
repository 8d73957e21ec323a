package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "article-api/pkg/errors"
)

// DataResponse wraps a single resource
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse wraps a page of resources
type ListResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta represents pagination information
type Meta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed
// so that field validation reports what is missing.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("The %s must be a %s.", typeErr.Field, jsonKind(typeErr.Type.Kind().String())))
	}
	return apperrors.NewValidationError("body", "The request body must be valid JSON.")
}

func jsonKind(kind string) string {
	switch kind {
	case "string", "ptr":
		return "string"
	case "int", "int64", "int32", "uint", "uint64", "float64":
		return "number"
	default:
		return "valid " + kind
	}
}

// pathID parses the :id route parameter. Anything but a positive integer is
// treated as an unknown resource.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

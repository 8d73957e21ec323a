package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"article-api/pkg/logger"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLength caps client supplied request IDs
const maxRequestIDLength = 128

// RequestID propagates or generates a request ID and stores it in the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Set(string(logger.RequestIDKey), id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

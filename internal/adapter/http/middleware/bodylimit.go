package middleware

import (
	"net/http"

	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize rejects requests whose declared Content-Length exceeds
// maxBytes and caps the body reader for the rest, so signature checks
// and JSON binding never buffer more than maxBytes.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.New(apperror.CodeInvalidAmount, "Request body too large", http.StatusRequestEntityTooLarge))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

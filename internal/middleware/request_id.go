package middleware

import (
	"go-silpa/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID memastikan setiap request punya id: pakai X-Request-ID dari klien
// bila ada, selain itu buat baru. Id yang sama dikembalikan di header respons
// supaya klien bisa melampirkannya saat lapor masalah.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

package middleware

import (
	"go-silpa/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger menempelkan request id dan user id ke logger ter-scope,
// lalu mempropagasikannya ke context standar supaya layer service/repo bisa
// mengambilnya tanpa tahu gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// rid sudah disiapkan RequestID(); fallback hanya bila middleware itu
		// tidak terpasang.
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("request_id", rid)
			c.Header("X-Request-ID", rid)
		}

		uid := c.GetString("user_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

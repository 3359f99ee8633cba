package middleware

import (
	"net/http"
	"sync"

	"go-silpa/internal/shared/apperror"
	"go-silpa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter menyimpan satu token bucket per key (alamat IP atau user id).
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit // request per detik
	b        int        // burst
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()

	return limiter.Allow()
}

// RateLimitByIP membatasi endpoint publik (login, register) per alamat IP.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			response.Error(c, http.StatusTooManyRequests,
				apperror.CodeServiceUnavailable,
				"Terlalu banyak permintaan dari alamat ini, coba lagi nanti", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser membatasi per akun login; request tanpa identitas diteruskan
// (endpoint di belakang AuthMiddleware selalu punya user_id).
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.allow(userID) {
			response.Error(c, http.StatusTooManyRequests,
				apperror.CodeServiceUnavailable,
				"Terlalu banyak permintaan, coba lagi nanti", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

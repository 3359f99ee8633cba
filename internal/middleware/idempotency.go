package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-silpa/internal/shared/apperror"
	"go-silpa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency melindungi pengajuan izin dari klik ganda: request POST dengan
// Idempotency-Key yang sama hanya diproses sekali, sisanya mendapat respons
// cache atau ditolak selama proses pertama masih berjalan.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			response.Success(c, http.StatusOK, cachedRes, nil)
			c.Abort()
			return
		}

		// SetNX atomik: jika lock sudah ada, request kembar sedang diproses.
		// Expiry pendek supaya lock hilang sendiri bila server mati.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"Pengajuan Anda sedang diproses, mohon tunggu sebentar", nil)
			c.Abort()
			return
		}

		// Handler menghapus lockKey setelah selesai.
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

package middleware

import (
	"net/http"

	"go-silpa/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireStudent menolak akun tanpa profil mahasiswa (akun admin) pada
// route yang mengoperasikan data milik mahasiswa sendiri.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID := c.GetString("student_id")
		if studentID == "" {
			response.Error(c, http.StatusForbidden, "STUDENT_ONLY", "Route ini hanya untuk akun mahasiswa", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

package notification

import (
	"go-silpa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.RequireStudent())
	{
		notifications.GET("", h.GetAll)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

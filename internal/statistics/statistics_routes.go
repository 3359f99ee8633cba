package statistics

import (
	"go-silpa/internal/middleware"
	"go-silpa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	stats := r.Group("/statistics")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/overview", middleware.RBACAuthorize(rbacService, "statistics", "read"), handler.Overview)
	}
}

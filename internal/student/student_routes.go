package student

import (
	"go-silpa/internal/middleware"
	"go-silpa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	students := r.Group("/students")
	students.Use(middleware.AuthMiddleware())
	{
		students.GET("/me", middleware.RequireStudent(), h.Me)
		students.GET("", middleware.RBACAuthorize(rbacService, "student", "read"), h.GetAll)
		students.GET("/:id", middleware.RBACAuthorize(rbacService, "student", "read"), h.GetByID)
		students.POST("", middleware.RBACAuthorize(rbacService, "student", "create"), h.Create)
		students.PUT("/:id", middleware.RBACAuthorize(rbacService, "student", "update"), h.Update)
	}
}

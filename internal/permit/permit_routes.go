package permit

import (
	"go-silpa/internal/middleware"
	"go-silpa/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	permits := r.Group("/permits")
	permits.Use(middleware.AuthMiddleware())
	{
		permits.GET("", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.GetAll)
		permits.GET("/:id", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.GetById)

		permits.POST("",
			middleware.RBACAuthorize(rbacService, "permit", "create"),
			middleware.RequireStudent(),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		permits.POST("/:id/revise",
			middleware.RBACAuthorize(rbacService, "permit", "create"),
			middleware.RequireStudent(),
			middleware.Idempotency(rdb),
			handler.Revise,
		)
		permits.GET("/:id/revision-draft",
			middleware.RBACAuthorize(rbacService, "permit", "read"),
			middleware.RequireStudent(),
			handler.RevisionDraft,
		)
		permits.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "permit", "create"),
			middleware.RequireStudent(),
			handler.Delete,
		)

		permits.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "permit", "approve"), handler.Approve)
		permits.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "permit", "approve"), handler.Reject)
		permits.POST("/:id/request-revision", middleware.RBACAuthorize(rbacService, "permit", "approve"), handler.RequestRevision)
	}
}

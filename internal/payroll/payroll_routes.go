package payroll

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		payrolls.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetMine)
		payrolls.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionReadAll), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionReadAll), handler.GetByID)
		if redisClient != nil {
			payrolls.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
				handler.Create,
			)
		} else {
			payrolls.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate), handler.Create)
		}
		payrolls.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionUpdate), handler.Update)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionDelete), handler.Delete)
	}
}

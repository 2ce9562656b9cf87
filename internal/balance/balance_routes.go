package balance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceBalance, rbac.ActionRead), handler.GetMine)
		balances.GET("/:employeeID", middleware.RBACAuthorize(rbacService, rbac.ResourceBalance, rbac.ActionReadAll), handler.GetByEmployee)
		balances.POST("/:employeeID/reset", middleware.RBACAuthorize(rbacService, rbac.ResourceBalance, rbac.ActionUpdate), handler.Reset)
	}
}

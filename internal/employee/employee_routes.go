package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead), handler.GetMe)
		employees.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate), handler.Create)
		employees.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionReadAll), handler.GetAll)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionReadAll), handler.GetByID)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate), handler.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete), handler.Delete)
	}
}

package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/leaves", middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead), handler.LeaveReport)
		reports.GET("/leaves/export", middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead), handler.ExportLeaveReport)
	}
}

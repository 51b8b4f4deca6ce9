package department

import (
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, perms domain.PermissionChecker) {
	departments := r.Group("/departments")
	departments.Use(authMW)
	{
		departments.GET("", middleware.RequirePermission(perms, "departments", domain.ResourceDepartment, domain.ActionRead), h.GetAll)
	}
}

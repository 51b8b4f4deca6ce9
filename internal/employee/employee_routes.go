package employee

import (
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/middleware"

	"github.com/gin-gonic/gin"
)

const viewEmployees = "employees"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, perms domain.PermissionChecker) {
	employees := r.Group("/employees")
	employees.Use(authMW)
	{
		employees.GET("/options",
			middleware.RequirePermission(perms, viewEmployees, domain.ResourceEmployee, domain.ActionRead),
			h.GetOptions,
		)
	}
}

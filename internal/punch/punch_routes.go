package punch

import (
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/middleware"

	"github.com/gin-gonic/gin"
)

const viewPunches = "punches"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, perms domain.PermissionChecker) {
	punches := r.Group("/punches")
	punches.Use(authMW)
	{
		punches.GET("", middleware.RequirePermission(perms, viewPunches, domain.ResourcePunch, domain.ActionRead), h.GetAll)
		punches.GET("/:id", middleware.RequirePermission(perms, viewPunches, domain.ResourcePunch, domain.ActionRead), h.GetByID)
	}
}

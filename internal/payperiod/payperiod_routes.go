package payperiod

import (
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/middleware"

	"github.com/gin-gonic/gin"
)

const viewPayPeriods = "pay_periods"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, perms domain.PermissionChecker) {
	periods := r.Group("/pay-periods")
	periods.Use(authMW)
	{
		periods.GET("", middleware.RequirePermission(perms, viewPayPeriods, domain.ResourcePayPeriod, domain.ActionRead), h.GetWindow)
		periods.GET("/:id/totals", middleware.RequirePermission(perms, viewPayPeriods, domain.ResourcePayPeriod, domain.ActionRead), h.GetTotals)
		periods.POST("/generate", middleware.RequirePermission(perms, viewPayPeriods, domain.ResourcePayPeriod, domain.ActionWrite), h.Generate)
	}
}

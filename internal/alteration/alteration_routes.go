package alteration

import (
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the review endpoints. Decisions check permissions in
// the service, so only the listing is guarded here. idempotency may be nil.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc, perms domain.PermissionChecker, idempotency gin.HandlerFunc) {
	alterations := r.Group("/punch-alterations")
	alterations.Use(authMW)
	{
		alterations.GET("", middleware.RequirePermission(perms, viewAlterations, domain.ResourcePunchAlteration, domain.ActionRead), h.GetAll)
		alterations.POST("/:id/approve", h.Approve)
		alterations.POST("/:id/reject", h.Reject)

		bulk := []gin.HandlerFunc{}
		if idempotency != nil {
			bulk = append(bulk, idempotency)
		}
		alterations.POST("/bulk-approve", append(bulk, h.BulkApprove)...)
	}
}

package rbac_http

import (
	"go-timeconsole/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, authMW gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(authMW)
	{
		group.POST("/can-perform", handler.CanPerform)
	}
}

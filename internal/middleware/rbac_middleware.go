package middleware

import (
	"net/http"

	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/contextutil"
	"go-timeconsole/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequirePermission guards a route with the permission predicate for the HR
// app. The resource id is taken from the :id path parameter when present.
func RequirePermission(checker domain.PermissionChecker, view, resourceType, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID := PrincipalID(c)
		if principalID == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context")
			return
		}

		req := domain.PermissionRequest{
			PrincipalID:  principalID,
			App:          domain.AppHR,
			View:         view,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			Action:       action,
		}

		allowed, err := checker.CanPerform(c.Request.Context(), req)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("permission check failed",
				zap.String("resource_type", resourceType),
				zap.String("action", action),
				zap.Error(err),
			)
			httpErr := apperror.ToHTTP(err)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resourceType + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}

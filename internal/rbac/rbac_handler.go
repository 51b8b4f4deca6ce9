package rbac

import (
	"net/http"
	"strings"

	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) CanPerform(c *gin.Context) {
	var req domain.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	req.PrincipalID = strings.TrimSpace(req.PrincipalID)
	req.View = strings.TrimSpace(req.View)
	req.ResourceType = strings.TrimSpace(req.ResourceType)
	req.ResourceID = strings.TrimSpace(req.ResourceID)

	allowed, err := h.service.CanPerform(c.Request.Context(), req)
	if err != nil {
		err = apperror.Upstream(err, "permission check failed")
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("permission check request failed", zap.String("principal_id", req.PrincipalID), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, domain.PermissionResponse{Allowed: allowed}, nil)
}

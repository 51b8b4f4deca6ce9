package alteration

import (
	"errors"
	"io"
	"net/http"

	"go-timeconsole/internal/middleware"
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
	l := zap.L().Named("alteration.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alteration.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("punch alteration request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	var req ListAlterationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(resp, req.Page, req.PageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, OutcomeApprove)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, OutcomeReject)
}

func (h *Handler) decide(c *gin.Context, outcome Outcome) {
	var req DecisionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	id := c.Param("id")
	principalID := middleware.PrincipalID(c)
	h.logger.Debug("http decide alteration",
		zap.String("alteration_id", id),
		zap.String("principal_id", principalID),
		zap.String("outcome", string(outcome)),
	)

	resp, err := h.service.Decide(c.Request.Context(), principalID, id, outcome, req.ReviewNotes)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkApprove(c *gin.Context) {
	var req BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.BulkApprove(c.Request.Context(), middleware.PrincipalID(c), req.IDs, req.ReviewNotes)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

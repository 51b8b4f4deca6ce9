package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/shared/contextutil"
	"go-timeconsole/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type idempotentResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated POST carrying the
// same Idempotency-Key. A concurrent duplicate gets 409 while the first one
// is still running. Server errors are not stored so the caller may retry.
func Idempotency(provider cache.Provider, ttl, lockTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost || provider == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, zap.L()).Named("middleware.idempotency")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), PrincipalID(c), idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := cache.GetJSON[idempotentResponse](ctx, provider, cacheKey); err == nil {
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		acquired, err := provider.SetIfAbsent(ctx, lockKey, []byte("locked"), lockTTL)
		if err != nil {
			logger.Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Abort(c, http.StatusConflict, apperror.CodeConflict, "a request with this idempotency key is still processing")
			return
		}
		defer func() {
			if err := provider.Delete(ctx, lockKey); err != nil {
				logger.Warn("idempotency lock release failed", zap.Error(err))
			}
		}()

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		stored := idempotentResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := cache.SetJSON(ctx, provider, cacheKey, stored, ttl); err != nil {
			logger.Warn("idempotency response store failed", zap.Error(err))
		}
	}
}

package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	principalIDKey contextKey = "principal_id"
	loggerKey      contextKey = "logger"
)

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request id or "".
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithPrincipalID stores the authenticated principal on ctx.
func WithPrincipalID(ctx context.Context, pid string) context.Context {
	return context.WithValue(ctx, principalIDKey, pid)
}

// GetPrincipalID returns the authenticated principal or "".
func GetPrincipalID(ctx context.Context) string {
	if pid, ok := ctx.Value(principalIDKey).(string); ok {
		return pid
	}
	return ""
}

// WithLogger stores a request scoped logger on ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request scoped logger, then defaultLogger, then a nop
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Metadata carries the basic tracing fields.
type Metadata struct {
	RequestID   string
	PrincipalID string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID:   GetRequestID(ctx),
		PrincipalID: GetPrincipalID(ctx),
	}
}

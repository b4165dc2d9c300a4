package logger

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contextKey string

// ContextKey is the key under which the request-scoped logger is stored,
// both in a gin.Context and in a plain context.Context.
const ContextKey = "logger"

const loggerKey contextKey = ContextKey

// FromContext retrieves the request logger. It understands *gin.Context as well
// as contexts produced by WithContext and falls back to the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return GetLogger()
	}
	if gc, ok := ctx.(*gin.Context); ok {
		if l, ok := gc.Get(ContextKey); ok {
			if zl, ok := l.(*zap.Logger); ok {
				return zl
			}
		}
		return GetLogger()
	}
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

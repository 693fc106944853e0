package ctxmanage

import (
	"context"

	"github.com/gin-gonic/gin"
)

type key string

const TraceIDKey key = "1"

// GetTraceIdOfRequest returns the trace id stored in the request context
// by the logger middleware. Returns "unknown" if the middleware never ran.
func GetTraceIdOfRequest(c *gin.Context) string {
	ctx := c.Request.Context()
	traceId, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return "unknown"
	}
	return traceId
}

// WithTraceId stores the trace id in the given context.
func WithTraceId(ctx context.Context, traceId string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceId)
}

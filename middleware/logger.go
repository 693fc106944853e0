package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/michaelgivor/stackshop-app/pkg/ctxmanage"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

// Logger assigns every request a trace id, stores it in the request
// context and logs the request on the way in and out.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := uuid.NewString()

		ctx := ctxmanage.WithTraceId(c.Request.Context(), traceId)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		slog.Info("started request",
			slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method),
			slog.String("URL", c.Request.URL.Path),
		)

		c.Next()

		slog.Info("completed request",
			slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method),
			slog.String("URL", c.Request.URL.Path),
			slog.Int("Status Code", c.Writer.Status()),
			slog.String("Duration", time.Since(start).String()),
		)
	}
}

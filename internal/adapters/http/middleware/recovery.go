package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// On panic, it:
//   - Logs the error with full stack trace at ERROR level
//   - Returns 500 with the standard error body unless headers were already sent
//
// This middleware should be applied first in the chain to catch panics
// from all subsequent handlers and middleware.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			// http.ErrAbortHandler is the sanctioned way to abort a response.
			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value, compared by identity
				panic(r)
			}

			ctx := c.Request.Context()

			var traceID string
			if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
				traceID = span.SpanContext().TraceID().String()
			}

			logging.FromContext(ctx).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.MessageInternalError))
			} else {
				c.Abort()
			}
		}()

		c.Next()
	}
}

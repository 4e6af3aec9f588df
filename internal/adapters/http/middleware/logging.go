package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

// probePrefix marks operational endpoints that are never access-logged.
const probePrefix = "/-/"

// Logging returns middleware that writes one access log line per proxied
// request, plus a debug line when the request starts.
//
// The completion line carries status, latency, bytes, and the matched route.
// When a handler recorded an error with c.Error, its domain kind is added so
// upstream failures can be told apart without reading the error text.
// Level follows the status class: 5xx error, 4xx warn, otherwise info.
//
// The logger comes from the request context; install ContextLogger and the
// ID middleware ahead of this one.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, probePrefix) {
			c.Next()
			return
		}

		start := time.Now()
		ctx := c.Request.Context()
		logger := logging.FromContext(ctx)

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		logger.DebugContext(ctx, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		}
		if last := c.Errors.Last(); last != nil {
			attrs = append(attrs, slog.String("kind", string(domain.KindOf(last.Err))))
		}

		logger.LogAttrs(ctx, statusLevel(status), "request completed", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

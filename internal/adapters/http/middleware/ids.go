package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request through the proxy and upstream.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID tracks a caller's transaction across services.
	// The dog API ignores it; it is forwarded so proxy logs can be joined
	// with whatever sits in front of the proxy.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength caps caller-supplied IDs; longer values are replaced.
const maxIDLength = 128

// idHeader describes an ID that is accepted from the caller or generated,
// echoed on the response, and forwarded upstream.
type idHeader struct {
	name  string
	key   string
	store func(ctx context.Context, id string) context.Context
}

var (
	requestIDHeader = idHeader{
		name: HeaderRequestID,
		key:  ContextKeyRequestID,
		store: func(ctx context.Context, id string) context.Context {
			return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
		},
	}

	correlationIDHeader = idHeader{
		name: HeaderCorrelationID,
		key:  ContextKeyCorrelationID,
		store: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	}
)

// RequestID returns middleware that accepts or generates X-Request-ID.
// The ID is stored on the gin.Context, the request context (where the
// upstream client picks it up), and the context logger, and is echoed on
// the response.
func RequestID() gin.HandlerFunc {
	return requestIDHeader.middleware()
}

// CorrelationID returns middleware that accepts or generates X-Correlation-ID.
// It behaves exactly like RequestID.
func CorrelationID() gin.HandlerFunc {
	return correlationIDHeader.middleware()
}

func (h idHeader) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.name)
		if !forwardable(id) {
			id = uuid.NewString()
		}

		c.Set(h.key, id)
		c.Header(h.name, id)
		c.Request = c.Request.WithContext(h.store(c.Request.Context(), id))

		c.Next()
	}
}

// forwardable reports whether a caller-supplied ID may be echoed and sent
// upstream verbatim: non-empty, bounded, and visible ASCII only.
func forwardable(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID stored by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

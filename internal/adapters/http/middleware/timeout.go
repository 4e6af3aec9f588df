package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrRequestDeadline is the context cause once the per-request budget set by
// RequestTimeout runs out. ctx.Err() still reports context.DeadlineExceeded.
var ErrRequestDeadline = errors.New("request deadline exceeded")

// RequestTimeout gives every request at most timeout to finish. Only the
// deadline is set here: the upstream client gives up when it passes and the
// handler answers 504. A non-positive timeout disables the budget.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeoutCause(c.Request.Context(), timeout, ErrRequestDeadline)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

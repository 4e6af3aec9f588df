// Package clients provides HTTP client adapters for downstream services.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// These are distinct from domain errors - they represent infrastructure failures
// that the ACL translates into domain errors. Both wrap the underlying cause.
var (
	// ErrTransport is returned when no HTTP response was obtained:
	// DNS failure, refused or reset connection, canceled request.
	ErrTransport = errors.New("transport failure")

	// ErrTimeout is returned when the per-call or caller deadline elapsed
	// before a response was obtained.
	ErrTimeout = errors.New("request timed out")
)

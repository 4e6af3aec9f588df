// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNetworkFailure indicates the upstream call never produced an HTTP response.
	ErrNetworkFailure = errors.New("network failure")

	// ErrUpstream indicates the upstream responded with a non-success status.
	ErrUpstream = errors.New("upstream error")

	// ErrTimeout indicates the upstream call exceeded its deadline.
	ErrTimeout = errors.New("upstream timeout")

	// ErrUnknownFailure covers everything else, including malformed upstream payloads.
	ErrUnknownFailure = errors.New("unknown failure")
)

// ErrorKind discriminates the operation error taxonomy.
type ErrorKind string

const (
	// KindNone is returned for a nil error.
	KindNone ErrorKind = ""

	// KindNetwork identifies transport-level failures.
	KindNetwork ErrorKind = "network"

	// KindUpstream identifies non-success upstream HTTP statuses.
	KindUpstream ErrorKind = "upstream"

	// KindTimeout identifies upstream calls that ran out of time.
	KindTimeout ErrorKind = "timeout"

	// KindUnknown identifies any other failure.
	KindUnknown ErrorKind = "unknown"
)

// NetworkError provides context for transport failures.
type NetworkError struct {
	Service string
	Cause   error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service %q unreachable: %v", e.Service, e.Cause)
	}

	return fmt.Sprintf("service %q unreachable", e.Service)
}

// Unwrap returns the sentinel and the cause for errors.Is() support.
func (e *NetworkError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNetworkFailure}
	}

	return []error{ErrNetworkFailure, e.Cause}
}

// NewNetworkError creates a network error with context.
func NewNetworkError(service string, cause error) error {
	return &NetworkError{Service: service, Cause: cause}
}

// UpstreamError carries the status code the upstream answered with.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service %q responded %d: %s", e.Service, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("service %q responded %d", e.Service, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewUpstreamError creates an upstream error for the given status code.
func NewUpstreamError(service string, statusCode int, message string) error {
	return &UpstreamError{Service: service, StatusCode: statusCode, Message: message}
}

// TimeoutError provides context for upstream deadline expiry.
type TimeoutError struct {
	Service   string
	Operation string
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("service %q timed out during %s", e.Service, e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// NewTimeoutError creates a timeout error with context.
func NewTimeoutError(service, operation string) error {
	return &TimeoutError{Service: service, Operation: operation}
}

// UnknownError wraps failures that fit no other kind.
type UnknownError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *UnknownError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}

	return e.Reason
}

// Unwrap returns the sentinel and the cause for errors.Is() support.
func (e *UnknownError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnknownFailure}
	}

	return []error{ErrUnknownFailure, e.Cause}
}

// NewUnknownError creates an unknown failure with context.
func NewUnknownError(reason string, cause error) error {
	return &UnknownError{Reason: reason, Cause: cause}
}

// IsNetworkFailure checks if an error is a network failure.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, ErrNetworkFailure)
}

// IsUpstream checks if an error is an upstream status error.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsTimeout checks if an error is an upstream timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsUnknownFailure checks if an error is explicitly classified as unknown.
func IsUnknownFailure(err error) bool {
	return errors.Is(err, ErrUnknownFailure)
}

// KindOf classifies err. Errors outside the taxonomy are KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case IsTimeout(err):
		return KindTimeout
	case IsNetworkFailure(err):
		return KindNetwork
	case IsUpstream(err):
		return KindUpstream
	default:
		return KindUnknown
	}
}

// UpstreamStatus returns the upstream status code carried by err, if any.
func UpstreamStatus(err error) (int, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode, true
	}

	return 0, false
}

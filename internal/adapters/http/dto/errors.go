// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

// StatusError is the fixed status field of every error body.
const StatusError = "error"

// Client-facing error messages. They never include upstream detail.
const (
	MessageNetworkError    = "Network error"
	MessageBadResponse     = "Bad response"
	MessageUpstreamTimeout = "Upstream timeout"
	MessageUnknownError    = "Unknown error"
	MessageInternalError   = "Internal error"
	MessageNotFound        = "Not found"
)

// ErrorResponse is the error envelope for all failure responses.
// It shares no fields with DataResponse.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error envelope carrying message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  StatusError,
		Message: message,
	}
}

// DataResponse is the success envelope.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// NewDataResponse wraps data in the success envelope.
func NewDataResponse[T any](data T) *DataResponse[T] {
	return &DataResponse[T]{Data: data}
}

// MapError maps an operation error to an HTTP status code and error body.
//
//	network  -> 500 "Network error"
//	upstream -> upstream status, "Bad response"
//	timeout  -> 504 "Upstream timeout"
//	other    -> 400 "Unknown error"
func MapError(err error) (int, *ErrorResponse) {
	switch domain.KindOf(err) {
	case domain.KindNetwork:
		return http.StatusInternalServerError, NewErrorResponse(MessageNetworkError)

	case domain.KindUpstream:
		status, _ := domain.UpstreamStatus(err)
		return passThroughStatus(status), NewErrorResponse(MessageBadResponse)

	case domain.KindTimeout:
		return http.StatusGatewayTimeout, NewErrorResponse(MessageUpstreamTimeout)

	default:
		return http.StatusBadRequest, NewErrorResponse(MessageUnknownError)
	}
}

// passThroughStatus keeps the upstream status unless it cannot carry a body.
func passThroughStatus(status int) int {
	if status < http.StatusMultipleChoices || status > 599 || status == http.StatusNotModified {
		return http.StatusBadGateway
	}

	return status
}

// HandleError logs err and writes the mapped error response.
// 5xx outcomes log at error level, everything else at warn.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	ctx := c.Request.Context()
	logging.FromContext(ctx).Log(ctx, level, "request failed",
		slog.String("kind", string(domain.KindOf(err))),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	_ = c.Error(err)
	c.JSON(status, resp)
}

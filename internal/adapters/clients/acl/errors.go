package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/domain"
)

// ErrorResponse is the error body dog.ceo sends with non-success statuses:
//
//	{"status":"error","message":"Breed not found (main breed does not exist)","code":404}
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty, cannot be parsed, or carries no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Message == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a client failure or a non-success response to a domain
// error:
//   - clients.ErrTimeout → domain.TimeoutError
//   - clients.ErrTransport → domain.NetworkError
//   - any other client error → domain.UnknownError
//   - non-2xx status → domain.UpstreamError carrying the status
//
// Returns nil for a 2xx response without a client error.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewNetworkError(serviceName, errors.New("no response received"))
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := ""
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		message = errResp.Message
	}

	return domain.NewUpstreamError(serviceName, resp.StatusCode, message)
}

// mapClientError translates client-level errors to domain errors.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrTimeout):
		return domain.NewTimeoutError(serviceName, operation)

	case errors.Is(err, clients.ErrTransport):
		return domain.NewNetworkError(serviceName, err)

	default:
		return domain.NewUnknownError(fmt.Sprintf("%s failed", operation), err)
	}
}

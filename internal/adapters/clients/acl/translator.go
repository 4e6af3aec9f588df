package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/domain"
)

const (
	// maxBodyBytes caps how much of a success body is decoded.
	maxBodyBytes = 10 << 20

	// maxErrorBodyBytes caps how much of an error body is drained and logged.
	maxErrorBodyBytes = 1 << 10
)

// errBodyTooLarge is returned when a success body exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("response body too large")

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in your service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewBaseAdapter creates a base adapter named after the client's downstream service.
func NewBaseAdapter(client *clients.Client, logger *slog.Logger) BaseAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return BaseAdapter{
		client:      client,
		serviceName: client.ServiceName(),
		logger:      logger,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET request and returns the response body.
// The path should be an absolute path starting with "/".
//
// On success the caller must close the body. Non-2xx responses are drained,
// logged at warn level, and returned as a domain.UpstreamError.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, a.handleErrorResponse(ctx, resp, operation)
	}

	return resp.Body, nil
}

// handleErrorResponse drains a bounded prefix of the body for the log and maps
// the status to a domain error.
func (a *BaseAdapter) handleErrorResponse(ctx context.Context, resp *http.Response, operation string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	a.logger.WarnContext(ctx, "upstream error response",
		slog.String("downstream", a.serviceName),
		slog.String("operation", operation),
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	resp.Body = io.NopCloser(bytes.NewReader(body))

	return MapHTTPError(resp, nil, a.serviceName, operation)
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading. Bodies above maxBodyBytes are rejected.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if len(raw) > maxBodyBytes {
		return nil, errBodyTooLarge
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// DecodeResponseForService decodes body and maps failures to domain errors.
// A deadline or transport failure while reading keeps its client
// classification; anything else is a domain.UnknownError.
func DecodeResponseForService[T any](body io.ReadCloser, serviceName, operation string) (*T, error) {
	result, err := DecodeResponse[T](body)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, clients.ErrTimeout) || errors.Is(err, clients.ErrTransport) {
		return nil, MapHTTPError(nil, err, serviceName, operation)
	}

	return nil, domain.NewUnknownError(fmt.Sprintf("%s: malformed response from %s", operation, serviceName), err)
}

package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/clients"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 64 << 10

// ErrorResponse is the error envelope returned by catalog services:
// {"error":{"code","message","details"},"traceId"}. A flat
// {"code","message"} body is accepted too.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the nested part of ErrorResponse.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode prefers the nested code.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage prefers the nested message.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body, returning nil when it is empty
// or not an error envelope.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var resp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&resp); err != nil {
		return nil
	}

	if resp.GetCode() == "" && resp.GetMessage() == "" {
		return nil
	}

	return &resp
}

// MapHTTPError converts a failed exchange with service into a domain error.
// clientErr takes precedence over resp. entityID names the resource for
// 404s. A 2xx response yields nil.
func MapHTTPError(resp *http.Response, clientErr error, service, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, service, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(service, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return mapStatus(resp.StatusCode, ParseErrorResponse(resp.Body), service, operation, entityID)
}

func mapClientError(err error, service, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, operation+": circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(service, operation+": retries exhausted")
	default:
		return domain.NewUnavailableError(service, fmt.Sprintf("%s: %v", operation, err))
	}
}

func mapStatus(status int, body *ErrorResponse, service, operation, entityID string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if body != nil && body.GetMessage() != "" {
		message = body.GetMessage()
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(service, entityID)
	case status == http.StatusConflict:
		return fmt.Errorf("%s: %s: %w", service, message, domain.ErrConflict)
	case status == http.StatusUnauthorized:
		return domain.NewForbiddenError(service, "authentication required")
	case status == http.StatusForbidden:
		return domain.NewForbiddenError(service, message)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(service, "rate limit exceeded")
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(service, message)
	}

	if body != nil && len(body.Error.Details) > 0 {
		// Report the first field in sorted order so the result is stable.
		field := slices.Sorted(maps.Keys(body.Error.Details))[0]
		return domain.NewValidationError(field, body.Error.Details[field])
	}

	return domain.NewValidationError("", message)
}

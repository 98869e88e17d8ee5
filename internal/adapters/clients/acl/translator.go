package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/clients"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// maxResponseBody bounds decoded response bodies.
const maxResponseBody = 16 << 20

// BaseAdapter holds the client shared by remote adapters and turns HTTP
// failures into domain errors.
type BaseAdapter struct {
	client  *clients.Client
	service string
}

// NewBaseAdapter returns a BaseAdapter reporting errors against service.
func NewBaseAdapter(client *clients.Client, service string) BaseAdapter {
	return BaseAdapter{client: client, service: service}
}

// ServiceName returns the name used in domain errors.
func (a *BaseAdapter) ServiceName() string {
	return a.service
}

// Get fetches path and returns the open body of a successful response. The
// caller must close it. Failures are already domain errors.
func (a *BaseAdapter) Get(ctx context.Context, path, operation, entityID string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.check(resp, err, operation, entityID)
}

func (a *BaseAdapter) check(resp *http.Response, err error, operation, entityID string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.service, operation, entityID)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.service, operation, entityID)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var out T
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBody)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}

// ValidateRequired returns a ValidationError for an empty value.
func ValidateRequired(value, field string) error {
	if value == "" {
		return domain.NewValidationError(field, "is required")
	}

	return nil
}

// Translator converts one external DTO into a domain value.
type Translator[E, D any] func(ext *E) (D, error)

// TranslateSlice translates items in order and stops at the first failure,
// naming the failing index.
func TranslateSlice[E, D any](items []E, translate Translator[E, D]) ([]D, error) {
	out := make([]D, 0, len(items))

	for i := range items {
		d, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, d)
	}

	return out, nil
}

// Package clients provides the outbound HTTP client used by remote catalog
// sources.
package clients

import "errors"

// Transport-level failures. Callers translate these into domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the request without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

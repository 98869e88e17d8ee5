package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
)

// Propagated headers.
const (
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans every hop of one logical operation, for
	// example a reload that pulls from a remote catalog instance.
	HeaderCorrelationID = "X-Correlation-ID"
)

// Gin context keys.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds IDs accepted from clients.
const maxIDLength = 128

type idMiddleware struct {
	header   string
	key      string
	store    func(context.Context, string) context.Context
	enricher func(context.Context, string) context.Context
}

// RequestID takes X-Request-ID from the request or generates a UUID, and
// exposes it on the response, the gin context, the request context and
// the context logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware{
		header:   HeaderRequestID,
		key:      ContextKeyRequestID,
		store:    ContextWithRequestID,
		enricher: logging.WithRequestID,
	}.handle
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware{
		header:   HeaderCorrelationID,
		key:      ContextKeyCorrelationID,
		store:    ContextWithCorrelationID,
		enricher: logging.WithCorrelationID,
	}.handle
}

func (m idMiddleware) handle(c *gin.Context) {
	id := c.GetHeader(m.header)
	if id == "" || len(id) > maxIDLength {
		id = uuid.NewString()
	}

	c.Set(m.key, id)
	c.Header(m.header, id)

	ctx := m.enricher(m.store(c.Request.Context(), id), id)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}

// GetRequestID returns the request ID from the gin context, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID from the gin context, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

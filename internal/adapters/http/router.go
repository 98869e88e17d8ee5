package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/handlers"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/middleware"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig wires handlers and middleware settings into the engine.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names server spans.
	ServiceName string

	Auth *config.AuthConfig

	Health  *handlers.HealthHandler
	Catalog *handlers.CatalogHandler

	// Timeout bounds /api/v1 requests. Negative disables it.
	Timeout time.Duration
}

// SetupRouter installs the middleware chain and routes. Order matters:
//  1. Recovery, so panics anywhere below are caught
//  2. Request and correlation IDs, so later logs carry them
//  3. OpenTelemetry spans and the X-Trace-ID header
//  4. Request logging (skips /-/)
//  5. Per-request timeout on /api/v1 only
//
// Probe routes live under /-/ without auth or timeout; the catalog API
// lives under /api/v1 with the admin routes behind gateway auth.
func SetupRouter(engine *gin.Engine, cfg *RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	if timeout > 0 {
		apiV1.Use(middleware.Timeout(timeout))
	}

	if cfg.Catalog != nil {
		cfg.Catalog.RegisterCatalogRoutes(apiV1, middleware.RequireAdmin(cfg.Auth)...)
	}
}

//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "github.com/jsamuelsen/idiom-catalog/internal/adapters/http"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/handlers"
	"github.com/jsamuelsen/idiom-catalog/internal/app"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/metrics"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

// adminAuth trusts the default gateway headers and requires the admin role.
var adminAuth = config.AuthConfig{
	Enabled:       true,
	SubjectHeader: "X-User-ID",
	RolesHeader:   "X-User-Roles",
	AdminRole:     "admin",
}

// catalogServer is one in-process catalog service behind the production
// router.
type catalogServer struct {
	*httptest.Server

	svc     *app.CatalogService
	metrics *metrics.Catalog
}

type serverOptions struct {
	sources []ports.CatalogSource
	sinks   []ports.CatalogSink
	auth    *config.AuthConfig

	// skipLoad leaves the service empty until the first reload.
	skipLoad bool
	failFast bool

	// wrap decorates the router, e.g. to observe inbound headers.
	wrap func(http.Handler) http.Handler
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startCatalogServer(ctx context.Context, opts serverOptions) (*catalogServer, error) {
	gin.SetMode(gin.TestMode)

	m := metrics.New("idiom_catalog")

	svc := app.NewCatalogService(opts.sources, opts.sinks, app.CatalogServiceConfig{
		FailFast: opts.failFast,
		Logger:   quietLogger(),
		Metrics:  m,
	})

	if !opts.skipLoad {
		if _, err := svc.Reload(ctx); err != nil {
			return nil, err
		}
	}

	registry := ports.NewHealthRegistry()
	if err := registry.Register(svc); err != nil {
		return nil, err
	}

	auth := opts.auth
	if auth == nil {
		auth = &adminAuth
	}

	engine := gin.New()
	apphttp.SetupRouter(engine, &apphttp.RouterConfig{
		Logger:      quietLogger(),
		ServiceName: "idiom-catalog-it",
		Auth:        auth,
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("it", "it", "it"), m.Handler()),
		Catalog:     handlers.NewCatalogHandler(svc, svc),
	})

	var handler http.Handler = engine
	if opts.wrap != nil {
		handler = opts.wrap(engine)
	}

	return &catalogServer{Server: httptest.NewServer(handler), svc: svc, metrics: m}, nil
}

func mustStartCatalogServer(t *testing.T, opts serverOptions) *catalogServer {
	t.Helper()

	s, err := startCatalogServer(context.Background(), opts)
	if err != nil {
		t.Fatalf("starting catalog server: %v", err)
	}

	t.Cleanup(s.Close)

	return s
}

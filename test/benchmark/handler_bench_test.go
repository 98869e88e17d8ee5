package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/catalogfile"
	apphttp "github.com/jsamuelsen/idiom-catalog/internal/adapters/http"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/handlers"
	"github.com/jsamuelsen/idiom-catalog/internal/app"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/metrics"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
	"github.com/jsamuelsen/idiom-catalog/internal/render"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadedService returns a service holding the built-in catalog.
func loadedService(b *testing.B) *app.CatalogService {
	b.Helper()

	svc := app.NewCatalogService(
		[]ports.CatalogSource{catalogfile.NewBuiltinSource()},
		nil,
		app.CatalogServiceConfig{Logger: discard(), Metrics: metrics.New("bench")},
	)

	if _, err := svc.Reload(context.Background()); err != nil {
		b.Fatalf("loading catalog: %v", err)
	}

	return svc
}

// newRouter wires the production middleware chain.
func newRouter(b *testing.B) *gin.Engine {
	b.Helper()

	svc := loadedService(b)

	registry := ports.NewHealthRegistry()
	if err := registry.Register(svc); err != nil {
		b.Fatal(err)
	}

	engine := gin.New()
	apphttp.SetupRouter(engine, &apphttp.RouterConfig{
		Logger:      discard(),
		ServiceName: "bench",
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"), nil),
		Catalog:     handlers.NewCatalogHandler(svc, svc),
	})

	return engine
}

func benchmarkRoute(b *testing.B, target string) {
	router := newRouter(b)
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("%s returned %d", target, w.Code)
		}
	}
}

// BenchmarkLiveness is the Kubernetes probe path and must stay cheap.
func BenchmarkLiveness(b *testing.B) {
	benchmarkRoute(b, "/-/live")
}

// BenchmarkReadiness runs the registered checks on every call.
func BenchmarkReadiness(b *testing.B) {
	benchmarkRoute(b, "/-/ready")
}

func BenchmarkGetEntry(b *testing.B) {
	benchmarkRoute(b, "/api/v1/entries/looping-over-a-range-of-numbers")
}

func BenchmarkListSections(b *testing.B) {
	benchmarkRoute(b, "/api/v1/sections")
}

func BenchmarkSearch(b *testing.B) {
	benchmarkRoute(b, "/api/v1/search?q=dict&limit=10")
}

func BenchmarkExport(b *testing.B) {
	benchmarkRoute(b, "/api/v1/catalog")
}

// BenchmarkCatalogSearch isolates the domain search from HTTP overhead.
func BenchmarkCatalogSearch(b *testing.B) {
	catalog := builtinCatalog(b)

	for _, keyword := range []string{"", "dict", "DEFAULTDICT", "no-such-keyword"} {
		b.Run("q="+keyword, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				_ = catalog.Search(keyword)
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	catalog := builtinCatalog(b)

	for _, format := range render.Formats() {
		b.Run(string(format), func(b *testing.B) {
			r, err := render.New(format)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()

			for b.Loop() {
				if err := r.Render(io.Discard, catalog); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkReload measures a full load, merge and swap of the built-in
// catalog.
func BenchmarkReload(b *testing.B) {
	svc := loadedService(b)
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := svc.Reload(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func builtinCatalog(b *testing.B) *domain.Catalog {
	b.Helper()

	c, err := catalogfile.Builtin()
	if err != nil {
		b.Fatal(err)
	}

	return c
}

package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/catalogfile"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/dto"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/handlers"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/middleware"
	"github.com/jsamuelsen/idiom-catalog/internal/app"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  time.Second,
		MaxRequestSize:  16,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the production middleware chain around a service
// loaded from the embedded catalog.
func newTestRouter(t *testing.T, auth *config.AuthConfig) *gin.Engine {
	t.Helper()

	svc := app.NewCatalogService(
		[]ports.CatalogSource{catalogfile.NewBuiltinSource()},
		nil,
		app.CatalogServiceConfig{Logger: discardLogger()},
	)

	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(svc))

	engine := gin.New()
	SetupRouter(engine, &RouterConfig{
		Logger:      discardLogger(),
		ServiceName: "idiom-catalog-test",
		Auth:        auth,
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.2.3", "abc123", "now"), nil),
		Catalog:     handlers.NewCatalogHandler(svc, svc),
	})

	return engine
}

func serve(engine http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func TestNew(t *testing.T) {
	cfg := testServerConfig()
	srv := New(cfg, discardLogger())

	require.NotNil(t, srv.Engine())
	assert.Same(t, cfg, srv.Config())
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
	assert.True(t, srv.Engine().HandleMethodNotAllowed)
}

func TestNew_IPv6Addr(t *testing.T) {
	cfg := testServerConfig()
	cfg.Host = "::1"

	assert.Equal(t, "[::1]:8080", New(cfg, discardLogger()).Addr())
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 0

	srv := New(cfg, discardLogger())
	errCh := srv.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Shutdown may race the listener starting; either way the channel closes
	// without a serve error.
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		if ok {
			assert.NoError(t, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMaxBodySize(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())

	var readErr error

	srv.Engine().POST("/echo", func(c *gin.Context) {
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	var maxErr *http.MaxBytesError
	require.ErrorAs(t, readErr, &maxErr)
	assert.Equal(t, int64(16), maxErr.Limit)
}

func TestMaxBodySize_Disabled(t *testing.T) {
	var readErr error

	engine := gin.New()
	engine.Use(maxBodySize(0))
	engine.POST("/echo", func(c *gin.Context) {
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	engine.ServeHTTP(httptest.NewRecorder(), req)

	assert.NoError(t, readErr)
}

func TestSetupRouter_Probes(t *testing.T) {
	engine := newTestRouter(t, nil)

	tests := []struct {
		target string
		want   string
	}{
		{target: "/-/live", want: `"status":"ok"`},
		{target: "/-/ready", want: `"catalog"`},
		{target: "/-/build", want: `"version":"1.2.3"`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := serve(engine, http.MethodGet, tt.target, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		})
	}
}

func TestSetupRouter_CatalogRoutes(t *testing.T) {
	engine := newTestRouter(t, nil)

	t.Run("sections", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/sections", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var sections []dto.SectionSummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sections))
		require.NotEmpty(t, sections)
		assert.Equal(t, "loops", sections[0].ID)
		assert.Positive(t, sections[0].EntryCount)
	})

	t.Run("entry", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/entries/looping-over-a-range-of-numbers", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entry dto.EntryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		assert.Equal(t, "loops", entry.SectionID)
		assert.Contains(t, entry.After, "range(6)")
	})

	t.Run("unknown entry", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/entries/no-such-idiom", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
	})

	t.Run("search pages", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/search?q=looping&limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page dto.PaginatedResponse[dto.EntryResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Items, 2)
		assert.True(t, page.HasMore)
		assert.NotEmpty(t, page.NextCursor)
	})

	t.Run("render", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/render?format=html", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})

	t.Run("method not allowed", func(t *testing.T) {
		srv := New(testServerConfig(), discardLogger())
		SetupRouter(srv.Engine(), &RouterConfig{
			Logger:  discardLogger(),
			Catalog: handlers.NewCatalogHandler(nil, nil),
		})

		assert.Equal(t, http.StatusMethodNotAllowed, serve(srv.Engine(), http.MethodDelete, "/api/v1/sections", nil).Code)
	})
}

func TestSetupRouter_Admin(t *testing.T) {
	t.Run("refused without gateway auth", func(t *testing.T) {
		engine := newTestRouter(t, &config.AuthConfig{Enabled: false, AdminRole: "admin"})

		w := serve(engine, http.MethodPost, "/api/v1/admin/reload", map[string]string{
			"X-User-ID":    "ada",
			"X-User-Roles": "admin",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reload as admin", func(t *testing.T) {
		engine := newTestRouter(t, &config.AuthConfig{
			Enabled:       true,
			SubjectHeader: "X-User-ID",
			RolesHeader:   "X-User-Roles",
			AdminRole:     "admin",
		})

		w := serve(engine, http.MethodPost, "/api/v1/admin/reload", map[string]string{
			"X-User-ID":    "ada",
			"X-User-Roles": "admin",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var summary ports.ReloadSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Positive(t, summary.Entries)
		assert.Equal(t, []string{catalogfile.BuiltinName}, summary.Sources)
	})
}

func TestSetupRouter_PropagatesRequestID(t *testing.T) {
	engine := newTestRouter(t, nil)

	w := serve(engine, http.MethodGet, "/api/v1/sections", map[string]string{
		middleware.HeaderRequestID: "upstream-42",
	})

	assert.Equal(t, "upstream-42", w.Header().Get(middleware.HeaderRequestID))
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/dto"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(router *gin.Engine, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: logging.LevelTrace}))
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		middleware gin.HandlerFunc
		header     string
		fromGin    func(*gin.Context) string
		fromCtx    func(context.Context) string
		logKey     string
	}{
		{
			name:       "request id",
			middleware: RequestID(),
			header:     HeaderRequestID,
			fromGin:    GetRequestID,
			fromCtx:    RequestIDFromContext,
			logKey:     "request_id",
		},
		{
			name:       "correlation id",
			middleware: CorrelationID(),
			header:     HeaderCorrelationID,
			fromGin:    GetCorrelationID,
			fromCtx:    CorrelationIDFromContext,
			logKey:     "correlation_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, incoming := range []string{"", "upstream-123", strings.Repeat("x", maxIDLength+1)} {
				var buf bytes.Buffer

				var ginID, ctxID string

				router := gin.New()
				router.Use(func(c *gin.Context) {
					c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), jsonLogger(&buf)))
				}, tt.middleware)
				router.GET("/api/v1/sections", func(c *gin.Context) {
					ginID = tt.fromGin(c)
					ctxID = tt.fromCtx(c.Request.Context())
					logging.FromContext(c.Request.Context()).Info("listed")
					c.Status(http.StatusOK)
				})

				headers := map[string]string{}
				if incoming != "" {
					headers[tt.header] = incoming
				}

				w := do(router, http.MethodGet, "/api/v1/sections", headers)

				require.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, w.Header().Get(tt.header), ginID)
				assert.Equal(t, ginID, ctxID)

				if incoming == "upstream-123" {
					assert.Equal(t, incoming, ginID)
				} else {
					_, err := uuid.Parse(ginID)
					require.NoError(t, err, "generated id should be a uuid")
				}

				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, ginID, entry[tt.logKey])
			}
		})
	}
}

func TestGetIDs_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
}

func TestExtractClaims(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.AuthConfig
		headers map[string]string
		want    *Claims
	}{
		{
			name:    "default headers",
			headers: map[string]string{"X-User-ID": "ada", "X-User-Roles": "admin, editor,,"},
			want:    &Claims{Subject: "ada", Roles: []string{"admin", "editor"}},
		},
		{
			name:    "configured headers",
			cfg:     &config.AuthConfig{SubjectHeader: "X-Sub", RolesHeader: "X-Groups"},
			headers: map[string]string{"X-Sub": "grace", "X-Groups": "reader", "X-User-ID": "ignored"},
			want:    &Claims{Subject: "grace", Roles: []string{"reader"}},
		},
		{
			name: "anonymous",
			want: &Claims{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, ExtractClaims(c, tt.cfg))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	enabled := &config.AuthConfig{
		Enabled:       true,
		SubjectHeader: "X-User-ID",
		RolesHeader:   "X-User-Roles",
		AdminRole:     "admin",
	}

	tests := []struct {
		name       string
		cfg        *config.AuthConfig
		headers    map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "admin allowed",
			cfg:        enabled,
			headers:    map[string]string{"X-User-ID": "ada", "X-User-Roles": "reader,admin"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing subject",
			cfg:        enabled,
			headers:    map[string]string{"X-User-Roles": "admin"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   dto.ErrorCodeUnauthorized,
		},
		{
			name:       "missing role",
			cfg:        enabled,
			headers:    map[string]string{"X-User-ID": "ada", "X-User-Roles": "reader"},
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeForbidden,
		},
		{
			name:       "auth disabled refuses everyone",
			cfg:        &config.AuthConfig{Enabled: false, AdminRole: "admin"},
			headers:    map[string]string{"X-User-ID": "ada", "X-User-Roles": "admin"},
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string

			router := gin.New()
			router.POST("/api/v1/admin/reload", append(RequireAdmin(tt.cfg), func(c *gin.Context) {
				if claims := GetClaims(c); claims != nil {
					subject = claims.Subject
				}

				c.Status(http.StatusOK)
			})...)

			w := do(router, http.MethodPost, "/api/v1/admin/reload", tt.headers)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode == "" {
				assert.Equal(t, "ada", subject)
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestRequireRole_WithoutRequireAuth(t *testing.T) {
	router := gin.New()
	router.GET("/", RequireRole(nil, "admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(router, http.MethodGet, "/", map[string]string{"X-User-Roles": "admin"}).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/", nil).Code)
}

func TestClaims_HasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"reader", "admin"}}

	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("Admin"))
	assert.False(t, (&Claims{}).HasRole("admin"))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		skipped   bool
	}{
		{name: "ok", path: "/api/v1/sections?limit=5", status: http.StatusOK, wantLevel: "INFO"},
		{name: "not found", path: "/api/v1/entries/nope", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", path: "/api/v1/catalog", status: http.StatusServiceUnavailable, wantLevel: "ERROR"},
		{name: "probe skipped", path: "/-/ready", status: http.StatusOK, skipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			router := gin.New()
			router.Use(Logging(jsonLogger(&buf)))
			router.NoRoute(func(c *gin.Context) { c.Status(tt.status) })

			do(router, http.MethodGet, tt.path, nil)

			if tt.skipped {
				assert.Empty(t, buf.String())
				return
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)

			var started, completed map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &started))
			require.NoError(t, json.Unmarshal([]byte(lines[1]), &completed))

			assert.Equal(t, "request started", started["msg"])
			assert.Equal(t, "request completed", completed["msg"])
			assert.Equal(t, tt.wantLevel, completed["level"])
			assert.Equal(t, tt.path, completed["path"])
			assert.InDelta(t, tt.status, completed["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer

	router := gin.New()
	router.Use(Recovery(jsonLogger(&buf)))
	router.GET("/panic", func(*gin.Context) { panic("render blew up") })

	w := do(router, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "render blew up")

	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "render blew up")
}

func TestRecovery_AfterWrite(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(jsonLogger(&bytes.Buffer{})))
	router.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late failure")
	})

	w := do(router, http.MethodGet, "/partial", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestTimeout(t *testing.T) {
	t.Run("sets deadline", func(t *testing.T) {
		var deadline time.Time

		router := gin.New()
		router.Use(Timeout(time.Minute))
		router.GET("/", func(c *gin.Context) {
			deadline, _ = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/", nil).Code)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})

	t.Run("silent handler past deadline", func(t *testing.T) {
		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := do(router, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrorCodeTimeout)
	})

	t.Run("handler response wins", func(t *testing.T) {
		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/", func(c *gin.Context) {
			<-c.Request.Context().Done()
			dto.HandleError(c, context.DeadlineExceeded)
		})

		assert.Equal(t, http.StatusInternalServerError, do(router, http.MethodGet, "/", nil).Code)
	})
}

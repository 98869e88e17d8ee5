package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/catalogfile"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/http/dto"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
)

func testOptions() Options {
	return Options{
		Client: config.ClientConfig{
			Timeout: time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     100 * time.Millisecond,
				Multiplier:      2,
			},
			CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1},
			Transport:      config.TransportConfig{MaxIdleConns: 2, MaxIdleConnsPerHost: 2, IdleConnTimeout: time.Second},
		},
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		location string
		want     config.SourceConfig
	}{
		{location: "", want: config.SourceConfig{Name: "builtin", Type: config.SourceBuiltin}},
		{location: "builtin", want: config.SourceConfig{Name: "builtin", Type: config.SourceBuiltin}},
		{location: "https://catalog.internal/", want: config.SourceConfig{Name: "cli", Type: config.SourceRemote, URL: "https://catalog.internal/"}},
		{location: "snap.DB", want: config.SourceConfig{Name: "sqlite:snap.DB", Type: config.SourceSQLite, Path: "snap.DB"}},
		{location: "team/idioms.yaml", want: config.SourceConfig{Name: "file:team/idioms.yaml", Type: config.SourceFile, Path: "team/idioms.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.location))
		})
	}
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	file := filepath.Join(dir, "team.json")
	data, err := catalogfile.Marshal(catalogfile.FormatJSON, builtinCatalog(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0o600))

	set, err := FromConfig(ctx, &config.CatalogConfig{
		Sources: []config.SourceConfig{
			{Name: "builtin", Type: config.SourceBuiltin},
			{Name: "team", Type: config.SourceFile, Path: file},
			{Name: "archive", Type: config.SourceSQLite, Path: filepath.Join(dir, "archive.db")},
			{Name: "upstream", Type: config.SourceRemote, URL: "http://127.0.0.1:1"},
		},
		Snapshot: config.SnapshotConfig{Enabled: true, Path: filepath.Join(dir, "snap.db")},
	}, testOptions())
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, set.Close()) })

	names := make([]string, 0, len(set.Sources))
	for _, src := range set.Sources {
		names = append(names, src.Name())
	}

	assert.Equal(t, []string{"builtin", "team", "archive", "remote:upstream"}, names)

	require.Len(t, set.Sinks, 1)
	assert.Equal(t, SnapshotSinkName, set.Sinks[0].Name())

	checkers := make([]string, 0, len(set.Checkers))
	for _, c := range set.Checkers {
		checkers = append(checkers, c.Name())
	}

	assert.ElementsMatch(t, []string{"archive", "remote:upstream", SnapshotSinkName}, checkers)

	loaded, err := set.Sources[1].Load(ctx)
	require.NoError(t, err)
	assert.True(t, builtinCatalog(t).Equal(loaded))
}

func TestFromConfig_UnknownType(t *testing.T) {
	_, err := FromConfig(context.Background(), &config.CatalogConfig{
		Sources: []config.SourceConfig{{Name: "odd", Type: "ftp"}},
	}, testOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `catalog.sources[0] "odd"`)
}

func TestFromLocation_Remote(t *testing.T) {
	want := builtinCatalog(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/catalog", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(dto.NewCatalogResponse(want)))
	}))
	t.Cleanup(server.Close)

	set, err := FromLocation(context.Background(), server.URL+"/", testOptions())
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, set.Close()) })

	require.Len(t, set.Sources, 1)

	catalog, err := set.Sources[0].Load(context.Background())
	require.NoError(t, err)
	assert.True(t, want.Equal(catalog))
}

func TestNewSink(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"out.yaml", "out.json", "out.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)

			sink, closer, err := NewSink(ctx, path)
			require.NoError(t, err)

			require.NoError(t, sink.Save(ctx, builtinCatalog(t)))
			require.NoError(t, closer.Close())

			set, err := FromLocation(ctx, path, testOptions())
			require.NoError(t, err)

			defer set.Close()

			loaded, err := set.Sources[0].Load(ctx)
			require.NoError(t, err)
			assert.True(t, builtinCatalog(t).Equal(loaded))
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := NewSink(ctx, filepath.Join(dir, "out.txt"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func builtinCatalog(t testing.TB) *domain.Catalog {
	t.Helper()

	c, err := catalogfile.Builtin()
	require.NoError(t, err)

	return c
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "idiom-catalog", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultClientRetryMaxAttempts, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, "admin", cfg.Auth.AdminRole)

	assert.Equal(t, []SourceConfig{{Name: SourceBuiltin, Type: SourceBuiltin}}, cfg.Catalog.Sources)
	assert.Equal(t, DefaultCatalogLoadConcurrency, cfg.Catalog.LoadConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Catalog.LoadTimeout)
	assert.True(t, cfg.Catalog.FailFast)
	assert.False(t, cfg.Catalog.Snapshot.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_CATALOG_FAIL_FAST", "false")
	t.Setenv("APP_CATALOG_LOAD_CONCURRENCY", "2")
	t.Setenv("APP_CATALOG_SNAPSHOT_ENABLED", "true")
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Catalog.FailFast)
	assert.Equal(t, 2, cfg.Catalog.LoadConcurrency)
	assert.True(t, cfg.Catalog.Snapshot.Enabled)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadFrom_ProfileLayering(t *testing.T) {
	dir := t.TempDir()

	base := `
app:
  environment: dev
catalog:
  title: Team idioms
  sources:
    - name: builtin
      type: builtin
    - name: team
      type: file
      path: catalog/team.yaml
`
	profile := `
log:
  format: pretty
catalog:
  fail_fast: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev.yaml"), []byte(profile), 0o600))

	cfg, err := LoadFrom(dir, "dev")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Environment)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, "Team idioms", cfg.Catalog.Title)
	assert.False(t, cfg.Catalog.FailFast)
	require.Len(t, cfg.Catalog.Sources, 2)
	assert.Equal(t, SourceConfig{Name: "team", Type: SourceFile, Path: "catalog/team.yaml"}, cfg.Catalog.Sources[1])
	require.NoError(t, cfg.Validate())
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "idiom-catalog", cfg.App.Name)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("app: [unclosed"), 0o600))

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestEnvKeyMapper(t *testing.T) {
	mapper := envKeyMapper([]string{"catalog.fail_fast", "server.port", "client.retry.max_attempts"})

	assert.Equal(t, "catalog.fail_fast", mapper("APP_CATALOG_FAIL_FAST"))
	assert.Equal(t, "client.retry.max_attempts", mapper("APP_CLIENT_RETRY_MAX_ATTEMPTS"))
	assert.Equal(t, "server.port", mapper("APP_SERVER_PORT"))
	assert.Equal(t, "some.new.key", mapper("APP_SOME_NEW_KEY"))
}

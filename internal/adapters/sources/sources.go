// Package sources builds catalog sources and sinks from configuration or
// from a single command-line location.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/catalogfile"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/clients"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/clients/acl"
	"github.com/jsamuelsen/idiom-catalog/internal/adapters/sqlitestore"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

// SnapshotSinkName names the configured SQLite snapshot sink.
const SnapshotSinkName = "snapshot"

// Options carries what remote sources need to build their HTTP client.
type Options struct {
	Client config.ClientConfig
	Logger *slog.Logger
}

// Set is the wiring produced for one catalog service. Close releases any
// database handles it opened.
type Set struct {
	Sources  []ports.CatalogSource
	Sinks    []ports.CatalogSink
	Checkers []ports.HealthChecker

	closers []io.Closer
}

// Close closes every opened store.
func (s *Set) Close() error {
	var errs []error

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	s.closers = nil

	return errors.Join(errs...)
}

func (s *Set) addStore(store *sqlitestore.Store) {
	s.closers = append(s.closers, store)
	s.Checkers = append(s.Checkers, store)
}

// FromConfig builds the sources listed in cfg, in order, plus the snapshot
// sink when enabled. On error, anything already opened is closed.
func FromConfig(ctx context.Context, cfg *config.CatalogConfig, opts Options) (_ *Set, err error) {
	set := &Set{}

	defer func() {
		if err != nil {
			set.Close()
		}
	}()

	for i, sc := range cfg.Sources {
		src, err := set.source(ctx, sc, opts)
		if err != nil {
			return nil, fmt.Errorf("catalog.sources[%d] %q: %w", i, sc.Name, err)
		}

		set.Sources = append(set.Sources, src)
	}

	if cfg.Snapshot.Enabled {
		store, err := sqlitestore.Open(ctx, SnapshotSinkName, cfg.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog.snapshot: %w", err)
		}

		set.addStore(store)
		set.Sinks = append(set.Sinks, store)
	}

	return set, nil
}

func (s *Set) source(ctx context.Context, sc config.SourceConfig, opts Options) (ports.CatalogSource, error) {
	switch sc.Type {
	case config.SourceBuiltin:
		return catalogfile.NewBuiltinSource(), nil

	case config.SourceFile:
		return catalogfile.NewFileSource(sc.Name, sc.Path), nil

	case config.SourceSQLite:
		store, err := sqlitestore.Open(ctx, sc.Name, sc.Path)
		if err != nil {
			return nil, err
		}

		s.addStore(store)

		return store, nil

	case config.SourceRemote:
		remote, err := newRemote(sc.Name, sc.URL, opts)
		if err != nil {
			return nil, err
		}

		s.Checkers = append(s.Checkers, remote)

		return remote, nil

	default:
		return nil, domain.NewValidationErrorWithValue("type", "unknown source type", sc.Type)
	}
}

func newRemote(name, baseURL string, opts Options) (*acl.RemoteSource, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		ServiceName: name,
		Timeout:     opts.Client.Timeout,
		Retry:       opts.Client.Retry,
		Circuit:     opts.Client.CircuitBreaker,
		Transport:   opts.Client.Transport,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating client for %s: %w", name, err)
	}

	return acl.NewRemoteSource(name, client), nil
}

// FromLocation builds a single source from a command-line location:
// "builtin", an http(s) URL, a SQLite database path, or a YAML/JSON file.
func FromLocation(ctx context.Context, location string, opts Options) (*Set, error) {
	cfg := &config.CatalogConfig{Sources: []config.SourceConfig{ParseLocation(location)}}

	return FromConfig(ctx, cfg, opts)
}

// ParseLocation maps a command-line location to a source configuration.
func ParseLocation(location string) config.SourceConfig {
	switch {
	case location == "" || location == config.SourceBuiltin:
		return config.SourceConfig{Name: config.SourceBuiltin, Type: config.SourceBuiltin}
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return config.SourceConfig{Name: "cli", Type: config.SourceRemote, URL: location}
	case IsSQLitePath(location):
		return config.SourceConfig{Name: "sqlite:" + location, Type: config.SourceSQLite, Path: location}
	default:
		return config.SourceConfig{Name: "file:" + location, Type: config.SourceFile, Path: location}
	}
}

// IsSQLitePath reports whether path names a SQLite database by extension.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// NewSink opens a sink for path: a SQLite store for database extensions,
// otherwise a YAML or JSON file writer. The returned closer is never nil.
func NewSink(ctx context.Context, path string) (ports.CatalogSink, io.Closer, error) {
	if IsSQLitePath(path) {
		store, err := sqlitestore.Open(ctx, "sqlite:"+path, path)
		if err != nil {
			return nil, nil, err
		}

		return store, store, nil
	}

	w, err := catalogfile.NewWriter(path)
	if err != nil {
		return nil, nil, err
	}

	return w, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

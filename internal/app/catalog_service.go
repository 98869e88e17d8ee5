// Package app holds the application services. CatalogService owns the
// current catalog, rebuilds it from the configured sources and answers
// queries against it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/idiom-catalog/internal/app/staging"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/metrics"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

// HealthCheckName is the name the service registers its health check under.
const HealthCheckName = "catalog"

const defaultLoadConcurrency = 4

// Lookup operation labels.
const (
	OpListSections = "list_sections"
	OpGetSection   = "get_section"
	OpGetEntries   = "get_entries"
	OpGetEntry     = "get_entry"
	OpSearch       = "search"
	OpSnapshot     = "snapshot"
)

var errNotLoaded = domain.NewUnavailableError(HealthCheckName, "not loaded")

// CatalogServiceConfig configures a CatalogService.
type CatalogServiceConfig struct {
	// Title names the merged catalog. Empty keeps the first source's title.
	Title string

	// LoadConcurrency bounds concurrent source loads.
	LoadConcurrency int

	// LoadTimeout bounds a whole reload. Zero means no limit.
	LoadTimeout time.Duration

	// FailFast aborts a reload on the first source failure. Otherwise failed
	// sources are skipped as long as one succeeds.
	FailFast bool

	Logger  *slog.Logger
	Metrics *metrics.Catalog
}

// CatalogService serves queries from an immutable catalog that Reload
// replaces atomically.
type CatalogService struct {
	current atomic.Pointer[domain.Catalog]

	// reloadMu serializes reloads so rollbacks restore the right catalog.
	reloadMu sync.Mutex

	sources []ports.CatalogSource
	sinks   []ports.CatalogSink
	cfg     CatalogServiceConfig
	exec    *Executor
	logger  *slog.Logger
	metrics *metrics.Catalog
}

var (
	_ ports.CatalogReader   = (*CatalogService)(nil)
	_ ports.CatalogReloader = (*CatalogService)(nil)
	_ ports.HealthChecker   = (*CatalogService)(nil)
)

// NewCatalogService returns a service with no catalog loaded. Sources are
// merged in the given order; sinks receive every successfully loaded catalog.
func NewCatalogService(sources []ports.CatalogSource, sinks []ports.CatalogSink, cfg CatalogServiceConfig) *CatalogService {
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = defaultLoadConcurrency
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.CatalogService"))

	return &CatalogService{
		sources: sources,
		sinks:   sinks,
		cfg:     cfg,
		exec:    NewExecutor(logger),
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// loaded is the Perform output: the catalogs that loaded, in source order.
type loaded struct {
	catalogs []*domain.Catalog
	sources  []string
	skipped  []string
}

// Reload loads every source, merges the results and swaps the merged
// catalog in. On any failure the previous catalog stays current.
func (s *CatalogService) Reload(ctx context.Context) (*ports.ReloadSummary, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LoadTimeout)

		defer cancel()
	}

	start := time.Now()

	op := Operation[time.Time, loaded, verifiedReload, *ports.ReloadSummary]{
		Name:     "reload_catalog",
		Validate: s.validateSources,
		Perform:  s.loadSources,
		Verify:   s.verifyCatalog,
		Archive:  s.archiveCatalog,
		Respond:  s.summarize,
	}

	summary, err := Execute(ctx, s.exec, op, start)

	sections, entries := 0, 0
	if summary != nil {
		sections, entries = summary.Sections, summary.Entries
	}

	s.metrics.ObserveReload(err, time.Since(start), sections, entries)

	if err != nil {
		return nil, fmt.Errorf("reloading catalog: %w", err)
	}

	return summary, nil
}

type verifiedReload struct {
	catalog *domain.Catalog
	loaded  loaded
}

func (s *CatalogService) validateSources(_ context.Context, _ time.Time) error {
	if len(s.sources) == 0 {
		return domain.NewValidationError("catalog.sources", "at least one source is required")
	}

	return nil
}

func (s *CatalogService) loadSources(ctx context.Context, _ time.Time) (loaded, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	fns := make([]func(context.Context) (*domain.Catalog, error), len(s.sources))
	for i, src := range s.sources {
		fns[i] = func(ctx context.Context) (*domain.Catalog, error) {
			c, err := src.Load(ctx)
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", src.Name(), err)
			}

			logger.DebugContext(ctx, "source loaded",
				slog.String("source", src.Name()),
				slog.Int("entries", c.Len()))

			return c, nil
		}
	}

	var out loaded

	if s.cfg.FailFast {
		catalogs, err := ParallelLimit(ctx, s.cfg.LoadConcurrency, fns...)
		if err != nil {
			return loaded{}, err
		}

		out.catalogs = catalogs
		for _, src := range s.sources {
			out.sources = append(out.sources, src.Name())
		}

		return out, nil
	}

	var errs []error

	for i, r := range ParallelPartialLimit(ctx, s.cfg.LoadConcurrency, fns...) {
		name := s.sources[i].Name()

		if r.Err != nil {
			logger.WarnContext(ctx, "skipping catalog source", slog.String("source", name), slog.Any("error", r.Err))
			out.skipped = append(out.skipped, name)
			errs = append(errs, r.Err)

			continue
		}

		out.catalogs = append(out.catalogs, r.Value)
		out.sources = append(out.sources, name)
	}

	if len(out.catalogs) == 0 {
		return loaded{}, fmt.Errorf("every source failed: %w", errors.Join(errs...))
	}

	return out, nil
}

func (s *CatalogService) verifyCatalog(_ context.Context, _ time.Time, in loaded) (verifiedReload, error) {
	title := s.cfg.Title
	for _, c := range in.catalogs {
		if title != "" {
			break
		}

		title = c.Title()
	}

	merged, err := domain.Merge(title, in.catalogs...)
	if err != nil {
		return verifiedReload{}, err
	}

	if merged.Len() == 0 {
		return verifiedReload{}, domain.NewValidationError("catalog", "no entries loaded")
	}

	return verifiedReload{catalog: merged, loaded: in}, nil
}

// archiveCatalog swaps the catalog in, then writes the sinks. A failing
// sink rolls the swap back.
func (s *CatalogService) archiveCatalog(ctx context.Context, _ time.Time, v verifiedReload) error {
	var plan staging.Plan

	previous := s.current.Load()

	_ = plan.Add(staging.Func{
		Name: "swap catalog",
		Do: func(context.Context) error {
			s.current.Store(v.catalog)
			return nil
		},
		Undo: func(context.Context) error {
			s.current.Store(previous)
			return nil
		},
	})

	for _, sink := range s.sinks {
		_ = plan.Add(staging.Func{
			Name: "save " + sink.Name(),
			Do: func(ctx context.Context) error {
				return sink.Save(ctx, v.catalog)
			},
		})
	}

	return plan.Commit(ctx)
}

func (s *CatalogService) summarize(ctx context.Context, start time.Time, v verifiedReload) (*ports.ReloadSummary, error) {
	summary := &ports.ReloadSummary{
		Sections: v.catalog.SectionCount(),
		Entries:  v.catalog.Len(),
		Sources:  v.loaded.sources,
		Skipped:  v.loaded.skipped,
		Duration: time.Since(start).Round(time.Millisecond).String(),
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "catalog loaded",
		slog.Int("sections", summary.Sections),
		slog.Int("entries", summary.Entries),
		slog.Any("sources", summary.Sources),
		slog.Any("skipped", summary.Skipped))

	return summary, nil
}

func (s *CatalogService) catalog() (*domain.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, errNotLoaded
	}

	return c, nil
}

// ListSections summarizes every section in document order.
func (s *CatalogService) ListSections(_ context.Context) ([]domain.SectionSummary, error) {
	return lookup(s, OpListSections, func(c *domain.Catalog) ([]domain.SectionSummary, error) {
		return c.Summaries(), nil
	})
}

// GetSection returns one section with its entries.
func (s *CatalogService) GetSection(_ context.Context, id string) (domain.Section, error) {
	return lookup(s, OpGetSection, func(c *domain.Catalog) (domain.Section, error) {
		return c.Section(id)
	})
}

// GetEntries returns the entries of one section in authoring order.
func (s *CatalogService) GetEntries(_ context.Context, sectionID string) ([]domain.Entry, error) {
	return lookup(s, OpGetEntries, func(c *domain.Catalog) ([]domain.Entry, error) {
		return c.GetEntries(sectionID)
	})
}

// GetEntry returns one entry by ID.
func (s *CatalogService) GetEntry(_ context.Context, id string) (domain.Entry, error) {
	return lookup(s, OpGetEntry, func(c *domain.Catalog) (domain.Entry, error) {
		return c.Entry(id)
	})
}

// Search returns the entries matching keyword in document order.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]domain.Entry, error) {
	entries, err := lookup(s, OpSearch, func(c *domain.Catalog) ([]domain.Entry, error) {
		return c.Search(keyword), nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSearch(len(entries))
	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "catalog searched",
		slog.String("keyword", keyword),
		slog.Int("results", len(entries)))

	return entries, nil
}

// Snapshot returns the current catalog. Catalogs are immutable, so the
// result stays valid after later reloads.
func (s *CatalogService) Snapshot(_ context.Context) (*domain.Catalog, error) {
	return lookup(s, OpSnapshot, func(c *domain.Catalog) (*domain.Catalog, error) {
		return c, nil
	})
}

func lookup[T any](s *CatalogService, op string, fn func(*domain.Catalog) (T, error)) (T, error) {
	var zero T

	c, err := s.catalog()
	if err != nil {
		s.metrics.ObserveLookup(op, err)
		return zero, err
	}

	v, err := fn(c)
	s.metrics.ObserveLookup(op, err)

	if err != nil {
		return zero, err
	}

	return v, nil
}

// Name implements ports.HealthChecker.
func (s *CatalogService) Name() string {
	return HealthCheckName
}

// Check reports unhealthy until a catalog is loaded.
func (s *CatalogService) Check(_ context.Context) error {
	_, err := s.catalog()
	return err
}

// Package ports defines the contracts between the application layer and the
// adapters that feed or persist the idiom catalog.
//
// Methods take a context first and speak only domain types. Failures are
// reported with the domain error types (ErrNotFound, ErrUnavailable, ...).
package ports

import (
	"context"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// CatalogSource produces a complete catalog from one origin: an embedded
// document, a file, a snapshot database, or a remote instance.
type CatalogSource interface {
	// Name identifies the source in logs, metrics, and conflict errors.
	Name() string

	// Load reads and validates the whole catalog.
	// Returns domain.ErrValidation for malformed content and
	// domain.ErrUnavailable when the origin cannot be reached.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// CatalogSink persists a catalog snapshot.
type CatalogSink interface {
	// Name identifies the sink in logs.
	Name() string

	// Save replaces whatever the sink held with the given catalog.
	Save(ctx context.Context, catalog *domain.Catalog) error
}

// CatalogReader is the read side the transport adapters depend on.
// Every method fails with domain.ErrUnavailable until a catalog is loaded.
type CatalogReader interface {
	ListSections(ctx context.Context) ([]domain.SectionSummary, error)
	GetSection(ctx context.Context, id string) (domain.Section, error)
	GetEntries(ctx context.Context, sectionID string) ([]domain.Entry, error)
	GetEntry(ctx context.Context, id string) (domain.Entry, error)
	Search(ctx context.Context, keyword string) ([]domain.Entry, error)
	Snapshot(ctx context.Context) (*domain.Catalog, error)
}

// ReloadSummary describes the outcome of a successful reload.
type ReloadSummary struct {
	Sections int      `json:"sections"`
	Entries  int      `json:"entries"`
	Sources  []string `json:"sources"`
	Skipped  []string `json:"skipped,omitempty"`
	Duration string   `json:"duration"`
}

// CatalogReloader rebuilds the catalog from its configured sources.
type CatalogReloader interface {
	Reload(ctx context.Context) (*ReloadSummary, error)
}

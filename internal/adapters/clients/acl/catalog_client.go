package acl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/clients"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
)

const (
	catalogPath  = "/api/v1/catalog"
	livenessPath = "/-/live"
)

// RemoteSource loads the catalog exported by another catalog service.
type RemoteSource struct {
	BaseAdapter

	name string
}

// NewRemoteSource returns a source named "remote:<name>" that reads through
// client.
func NewRemoteSource(name string, client *clients.Client) *RemoteSource {
	return &RemoteSource{
		BaseAdapter: NewBaseAdapter(client, client.ServiceName()),
		name:        name,
	}
}

// remoteCatalog mirrors the export payload of GET /api/v1/catalog.
type remoteCatalog struct {
	Title    string          `json:"title"`
	Sections []remoteSection `json:"sections"`
}

type remoteSection struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Entries []remoteEntry `json:"entries"`
}

type remoteEntry struct {
	ID         string            `json:"id"`
	SectionID  string            `json:"sectionId"`
	Title      string            `json:"title"`
	References []remoteReference `json:"references"`
	Before     []remoteSnippet   `json:"before"`
	After      string            `json:"after"`
	Rationale  string            `json:"rationale"`
}

type remoteReference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type remoteSnippet struct {
	Label string `json:"label"`
	Code  string `json:"code"`
}

// Name implements ports.CatalogSource and ports.HealthChecker.
func (s *RemoteSource) Name() string {
	return "remote:" + s.name
}

// Load fetches and translates the remote catalog.
func (s *RemoteSource) Load(ctx context.Context) (*domain.Catalog, error) {
	logger := logging.FromContext(ctx).With(slog.String("source", s.Name()))

	body, err := s.Get(ctx, catalogPath, "load catalog", "catalog")
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[remoteCatalog](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	sections, err := TranslateSlice(ext.Sections, translateSection)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", s.Name(), err)
	}

	catalog, err := domain.NewCatalog(ext.Title, sections)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", s.Name(), err)
	}

	logger.DebugContext(ctx, "remote catalog fetched",
		slog.Int("sections", catalog.SectionCount()),
		slog.Int("entries", catalog.Len()))

	return catalog, nil
}

// Check probes the remote liveness endpoint.
func (s *RemoteSource) Check(ctx context.Context) error {
	body, err := s.Get(ctx, livenessPath, "liveness probe", "")
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}

func translateSection(ext *remoteSection) (domain.Section, error) {
	if err := ValidateRequired(ext.Title, "title"); err != nil {
		return domain.Section{}, err
	}

	entries, err := TranslateSlice(ext.Entries, translateEntry)
	if err != nil {
		return domain.Section{}, fmt.Errorf("section %q: %w", ext.ID, err)
	}

	return domain.Section{ID: ext.ID, Title: ext.Title, Entries: entries}, nil
}

func translateEntry(ext *remoteEntry) (domain.Entry, error) {
	if err := errors.Join(
		ValidateRequired(ext.Title, "title"),
		ValidateRequired(ext.After, "after"),
	); err != nil {
		return domain.Entry{}, err
	}

	e := domain.Entry{
		ID:        ext.ID,
		Title:     ext.Title,
		After:     ext.After,
		Rationale: ext.Rationale,
	}

	for _, r := range ext.References {
		e.References = append(e.References, domain.Reference{Title: r.Title, URL: r.URL})
	}

	for _, b := range ext.Before {
		e.Before = append(e.Before, domain.Snippet{Label: b.Label, Code: b.Code})
	}

	return e, nil
}

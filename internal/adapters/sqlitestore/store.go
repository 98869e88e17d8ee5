// Package sqlitestore keeps catalog snapshots in a SQLite database.
// The store is both a catalog source (Load) and a snapshot sink (Save).
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

//go:embed schema.sql
var schemaSQL string

const metaTitle = "title"

var (
	_ ports.CatalogSource = (*Store)(nil)
	_ ports.CatalogSink   = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store persists one catalog snapshot.
type Store struct {
	db   *sql.DB
	name string
}

// Open connects to the database at dsn and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, name, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", dsn, err)
	}

	// SQLite allows one writer; an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	s, err := New(ctx, name, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an existing connection and applies the schema.
func New(ctx context.Context, name string, db *sql.DB) (*Store, error) {
	if name == "" {
		name = "sqlite"
	}

	if err := migrate(ctx, db); err != nil {
		return nil, err
	}

	return &Store{db: db, name: name}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}

// Name implements ports.CatalogSource, ports.CatalogSink and ports.HealthChecker.
func (s *Store) Name() string {
	return s.name
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot in a single transaction.
func (s *Store) Save(ctx context.Context, c *domain.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"entry_references", "snippets", "entries", "sections", "catalog_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES (?, ?), ('saved_at', ?)`,
		metaTitle, c.Title(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	for si, section := range c.Sections() {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO sections (id, position, title) VALUES (?, ?, ?)`,
			section.ID, si, section.Title); err != nil {
			return fmt.Errorf("writing section %s: %w", section.ID, err)
		}

		for ei, e := range section.Entries {
			if err = insertEntry(ctx, tx, section.ID, ei, e); err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, sectionID string, pos int, e domain.Entry) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entries (id, section_id, position, title, after_code, rationale) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, sectionID, pos, e.Title, e.After, e.Rationale); err != nil {
		return fmt.Errorf("writing entry %s: %w", e.ID, err)
	}

	for i, b := range e.Before {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snippets (entry_id, position, label, code) VALUES (?, ?, ?, ?)`,
			e.ID, i, b.Label, b.Code); err != nil {
			return fmt.Errorf("writing snippet %s[%d]: %w", e.ID, i, err)
		}
	}

	for i, r := range e.References {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entry_references (entry_id, position, title, url) VALUES (?, ?, ?, ?)`,
			e.ID, i, r.Title, r.URL); err != nil {
			return fmt.Errorf("writing reference %s[%d]: %w", e.ID, i, err)
		}
	}

	return nil
}

// Load rebuilds the stored snapshot in authoring order.
// Returns domain.ErrNotFound when nothing has been saved yet.
func (s *Store) Load(ctx context.Context) (*domain.Catalog, error) {
	var title string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = ?`, metaTitle).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("catalog snapshot", s.name)
	}

	if err != nil {
		return nil, domain.NewUnavailableError(s.name, err.Error())
	}

	snippets, err := s.loadSnippets(ctx)
	if err != nil {
		return nil, err
	}

	refs, err := s.loadReferences(ctx)
	if err != nil {
		return nil, err
	}

	sections, err := s.loadSections(ctx, snippets, refs)
	if err != nil {
		return nil, err
	}

	return domain.NewCatalog(title, sections)
}

func (s *Store) loadSections(ctx context.Context, snippets map[string][]domain.Snippet,
	refs map[string][]domain.Reference,
) ([]domain.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, e.id, e.title, e.after_code, e.rationale
		FROM sections s
		LEFT JOIN entries e ON e.section_id = s.id
		ORDER BY s.position, e.position`)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section

	for rows.Next() {
		var (
			sectionID, sectionTitle                   string
			entryID, entryTitle, afterCode, rationale sql.NullString
		)

		if err := rows.Scan(&sectionID, &sectionTitle, &entryID, &entryTitle, &afterCode, &rationale); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}

		if n := len(sections); n == 0 || sections[n-1].ID != sectionID {
			sections = append(sections, domain.Section{ID: sectionID, Title: sectionTitle})
		}

		if !entryID.Valid {
			continue
		}

		current := &sections[len(sections)-1]
		current.Entries = append(current.Entries, domain.Entry{
			ID:         entryID.String,
			Title:      entryTitle.String,
			After:      afterCode.String,
			Rationale:  rationale.String,
			Before:     snippets[entryID.String],
			References: refs[entryID.String],
		})
	}

	return sections, rows.Err()
}

func (s *Store) loadSnippets(ctx context.Context) (map[string][]domain.Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_id, label, code FROM snippets ORDER BY entry_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying snippets: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Snippet)

	for rows.Next() {
		var id string

		var sn domain.Snippet
		if err := rows.Scan(&id, &sn.Label, &sn.Code); err != nil {
			return nil, fmt.Errorf("scanning snippet: %w", err)
		}

		out[id] = append(out[id], sn)
	}

	return out, rows.Err()
}

func (s *Store) loadReferences(ctx context.Context) (map[string][]domain.Reference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_id, title, url FROM entry_references ORDER BY entry_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Reference)

	for rows.Next() {
		var id string

		var ref domain.Reference
		if err := rows.Scan(&id, &ref.Title, &ref.URL); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}

		out[id] = append(out[id], ref)
	}

	return out, rows.Err()
}

package catalogfile

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// document is the on-disk shape shared by the YAML and JSON encodings.
type document struct {
	Title    text         `yaml:"title,omitempty" json:"title,omitempty"`
	Sections []sectionDoc `yaml:"sections" json:"sections"`
}

type sectionDoc struct {
	ID      string     `yaml:"id,omitempty" json:"id,omitempty"`
	Title   text       `yaml:"title" json:"title"`
	Entries []entryDoc `yaml:"entries" json:"entries"`
}

type entryDoc struct {
	ID         string         `yaml:"id,omitempty" json:"id,omitempty"`
	Title      text           `yaml:"title" json:"title"`
	References []referenceDoc `yaml:"references,omitempty" json:"references,omitempty"`
	Before     []snippetDoc   `yaml:"before" json:"before"`
	After      text           `yaml:"after" json:"after"`
	Rationale  text           `yaml:"rationale,omitempty" json:"rationale,omitempty"`
}

type referenceDoc struct {
	Title text   `yaml:"title,omitempty" json:"title,omitempty"`
	URL   string `yaml:"url" json:"url"`
}

// snippetDoc accepts either a bare string or a {label, code} mapping.
type snippetDoc struct {
	Label text `yaml:"label,omitempty" json:"label,omitempty"`
	Code  text `yaml:"code" json:"code"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *snippetDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Label = ""
		return node.Decode(&s.Code)
	}

	type plain snippetDoc

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*s = snippetDoc(p)

	return nil
}

// MarshalYAML implements yaml.Marshaler. Unlabelled snippets are written as
// bare scalars.
func (s snippetDoc) MarshalYAML() (any, error) {
	if s.Label == "" {
		return s.Code, nil
	}

	type plain snippetDoc

	return plain(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *snippetDoc) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		*s = snippetDoc{Code: text(code)}
		return nil
	}

	type plain snippetDoc

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("snippet must be a string or an object with code: %w", err)
	}

	*s = snippetDoc(p)

	return nil
}

// text is free-form catalog text such as titles and code.
type text string

// MarshalYAML implements yaml.Marshaler. Multi-line text is written as a
// literal block when YAML reads it back unchanged, and double-quoted
// otherwise: a block scalar cannot open with whitespace or a blank line
// and turns carriage returns into line feeds.
func (t text) MarshalYAML() (any, error) {
	s := string(t)
	if s == strings.TrimSpace(s) && !strings.ContainsAny(s, "\r\n") {
		return s, nil
	}

	style := yaml.DoubleQuotedStyle
	if literalSafe(s) {
		style = yaml.LiteralStyle
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Style: style, Value: s}, nil
}

func literalSafe(s string) bool {
	if !strings.Contains(s, "\n") {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)

	if unicode.IsSpace(first) || last == ' ' || last == '\t' {
		return false
	}

	for _, r := range s {
		if r == '\r' || (r != '\n' && r != '\t' && !unicode.IsPrint(r)) {
			return false
		}
	}

	return true
}

// toDomain builds a validated catalog. Field paths in the returned
// validation errors follow the document layout.
func (d document) toDomain() (*domain.Catalog, error) {
	sections := make([]domain.Section, 0, len(d.Sections))

	for _, s := range d.Sections {
		section := domain.Section{
			ID:      s.ID,
			Title:   string(s.Title),
			Entries: make([]domain.Entry, 0, len(s.Entries)),
		}

		for _, e := range s.Entries {
			entry := domain.Entry{
				ID:        e.ID,
				Title:     string(e.Title),
				After:     string(e.After),
				Rationale: string(e.Rationale),
			}

			for _, r := range e.References {
				entry.References = append(entry.References, domain.Reference{Title: string(r.Title), URL: r.URL})
			}

			for _, b := range e.Before {
				entry.Before = append(entry.Before, domain.Snippet{Label: string(b.Label), Code: string(b.Code)})
			}

			section.Entries = append(section.Entries, entry)
		}

		sections = append(sections, section)
	}

	return domain.NewCatalog(string(d.Title), sections)
}

func fromDomain(c *domain.Catalog) document {
	sections := c.Sections()
	d := document{
		Title:    text(c.Title()),
		Sections: make([]sectionDoc, 0, len(sections)),
	}

	for _, s := range sections {
		sd := sectionDoc{ID: s.ID, Title: text(s.Title), Entries: make([]entryDoc, 0, len(s.Entries))}

		for _, e := range s.Entries {
			ed := entryDoc{
				ID:        e.ID,
				Title:     text(e.Title),
				After:     text(e.After),
				Rationale: text(e.Rationale),
				Before:    make([]snippetDoc, 0, len(e.Before)),
			}

			for _, r := range e.References {
				ed.References = append(ed.References, referenceDoc{Title: text(r.Title), URL: r.URL})
			}

			for _, b := range e.Before {
				ed.Before = append(ed.Before, snippetDoc{Label: text(b.Label), Code: text(b.Code)})
			}

			sd.Entries = append(sd.Entries, ed)
		}

		d.Sections = append(d.Sections, sd)
	}

	return d
}

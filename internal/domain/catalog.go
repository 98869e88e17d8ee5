package domain

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Reference is an external link attached to an entry.
type Reference struct {
	Title string
	URL   string
}

// Snippet is one "before" variant of an idiom. Label is optional and
// distinguishes alternatives such as "C style" and "slightly better".
type Snippet struct {
	Label string
	Code  string
}

// Entry is one idiom lesson: a naive form and the recommended form.
type Entry struct {
	// ID is unique across the catalog. Derived from Title when not authored.
	ID string

	// SectionID is the owning section. Set by NewCatalog.
	SectionID string

	Title      string
	References []Reference

	// Before holds one or more naive variants that all resolve to After.
	Before []Snippet

	// After is the idiomatic form.
	After string

	// Rationale is optional free text, often a quote from the talk.
	Rationale string
}

// Section is a named topic grouping of entries in authoring order.
type Section struct {
	ID      string
	Title   string
	Entries []Entry
}

// SectionSummary describes a section without its entries.
type SectionSummary struct {
	ID         string
	Title      string
	EntryCount int
}

type entryPos struct {
	section int
	entry   int
}

// Catalog is the immutable, ordered Section -> Entry hierarchy.
// A Catalog is safe for concurrent use by any number of readers; every
// accessor returns copies so callers cannot mutate the shared state.
type Catalog struct {
	title    string
	sections []Section

	sectionIndex map[string]int
	entryIndex   map[string]entryPos

	// haystacks holds the case-folded searchable fields of every entry,
	// aligned with document order.
	haystacks [][]string
	order     []entryPos
}

// NewCatalog validates the sections and builds an immutable catalog.
// Missing section and entry IDs are derived from titles with Slugify.
func NewCatalog(title string, sections []Section) (*Catalog, error) {
	c := &Catalog{
		title:        strings.TrimSpace(title),
		sections:     make([]Section, 0, len(sections)),
		sectionIndex: make(map[string]int, len(sections)),
		entryIndex:   make(map[string]entryPos),
	}

	folder := cases.Fold()

	for si, s := range sections {
		field := fmt.Sprintf("sections[%d]", si)

		section, err := normalizeSection(field, s)
		if err != nil {
			return nil, err
		}

		if _, dup := c.sectionIndex[section.ID]; dup {
			return nil, NewConflictError("section", section.ID, field)
		}

		c.sectionIndex[section.ID] = len(c.sections)

		for ei := range section.Entries {
			entry := &section.Entries[ei]
			entry.SectionID = section.ID

			if _, dup := c.entryIndex[entry.ID]; dup {
				return nil, NewConflictError("entry", entry.ID, fmt.Sprintf("%s.entries[%d]", field, ei))
			}

			pos := entryPos{section: len(c.sections), entry: ei}
			c.entryIndex[entry.ID] = pos
			c.order = append(c.order, pos)
			c.haystacks = append(c.haystacks, searchFields(folder, entry))
		}

		c.sections = append(c.sections, section)
	}

	return c, nil
}

// Merge concatenates catalogs in the given order into a new catalog.
// Identifiers must stay unique across all inputs.
func Merge(title string, catalogs ...*Catalog) (*Catalog, error) {
	var sections []Section

	for _, c := range catalogs {
		if c == nil {
			continue
		}

		sections = append(sections, c.Sections()...)
	}

	return NewCatalog(title, sections)
}

func normalizeSection(field string, s Section) (Section, error) {
	out := Section{
		ID:    strings.TrimSpace(s.ID),
		Title: strings.TrimSpace(s.Title),
	}

	if out.Title == "" {
		return Section{}, NewValidationError(field+".title", "is required")
	}

	if out.ID == "" {
		out.ID = Slugify(out.Title)
	}

	if out.ID == "" {
		return Section{}, NewValidationErrorWithValue(field+".id", "cannot be derived from title", out.Title)
	}

	out.Entries = make([]Entry, 0, len(s.Entries))

	for i, e := range s.Entries {
		entry, err := normalizeEntry(fmt.Sprintf("%s.entries[%d]", field, i), e)
		if err != nil {
			return Section{}, err
		}

		out.Entries = append(out.Entries, entry)
	}

	return out, nil
}

func normalizeEntry(field string, e Entry) (Entry, error) {
	out := cloneEntry(e)
	out.ID = strings.TrimSpace(out.ID)
	out.Title = strings.TrimSpace(out.Title)

	if out.Title == "" {
		return Entry{}, NewValidationError(field+".title", "is required")
	}

	if out.ID == "" {
		out.ID = Slugify(out.Title)
	}

	if out.ID == "" {
		return Entry{}, NewValidationErrorWithValue(field+".id", "cannot be derived from title", out.Title)
	}

	if strings.TrimSpace(out.After) == "" {
		return Entry{}, NewValidationError(field+".after", "is required")
	}

	if len(out.Before) == 0 {
		return Entry{}, NewValidationError(field+".before", "at least one snippet is required")
	}

	for i, b := range out.Before {
		if strings.TrimSpace(b.Code) == "" {
			return Entry{}, NewValidationError(fmt.Sprintf("%s.before[%d].code", field, i), "is required")
		}
	}

	for i, r := range out.References {
		if strings.TrimSpace(r.URL) == "" {
			return Entry{}, NewValidationError(fmt.Sprintf("%s.references[%d].url", field, i), "is required")
		}
	}

	return out, nil
}

// searchFields folds every field a keyword search looks at. Fields are
// kept apart so a keyword never matches across two of them.
func searchFields(folder cases.Caser, e *Entry) []string {
	fields := make([]string, 0, len(e.Before)+3)
	fields = append(fields, folder.String(e.Title), folder.String(e.Rationale))

	for _, s := range e.Before {
		fields = append(fields, folder.String(s.Code))
	}

	return append(fields, folder.String(e.After))
}

// Title returns the catalog title, which may be empty.
func (c *Catalog) Title() string {
	return c.title
}

// ListSections yields section IDs in document order.
// The sequence is finite and can be ranged over any number of times.
func (c *Catalog) ListSections() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range c.sections {
			if !yield(c.sections[i].ID) {
				return
			}
		}
	}
}

// Sections returns a copy of every section in document order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i := range c.sections {
		out[i] = cloneSection(c.sections[i])
	}

	return out
}

// Summaries returns ID, title and entry count of every section in order.
func (c *Catalog) Summaries() []SectionSummary {
	out := make([]SectionSummary, len(c.sections))
	for i, s := range c.sections {
		out[i] = SectionSummary{ID: s.ID, Title: s.Title, EntryCount: len(s.Entries)}
	}

	return out
}

// Section returns the section with the given ID.
func (c *Catalog) Section(id string) (Section, error) {
	idx, ok := c.sectionIndex[id]
	if !ok {
		return Section{}, NewNotFoundError("section", id)
	}

	return cloneSection(c.sections[idx]), nil
}

// GetEntries returns the entries of a section in authoring order.
func (c *Catalog) GetEntries(sectionID string) ([]Entry, error) {
	idx, ok := c.sectionIndex[sectionID]
	if !ok {
		return nil, NewNotFoundError("section", sectionID)
	}

	return cloneEntries(c.sections[idx].Entries), nil
}

// Entry returns the entry with the given ID.
func (c *Catalog) Entry(id string) (Entry, error) {
	pos, ok := c.entryIndex[id]
	if !ok {
		return Entry{}, NewNotFoundError("entry", id)
	}

	return cloneEntry(c.sections[pos.section].Entries[pos.entry]), nil
}

// Entries returns every entry in document order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, pos := range c.order {
		out = append(out, cloneEntry(c.sections[pos.section].Entries[pos.entry]))
	}

	return out
}

// Search returns entries whose title, rationale, or code contains keyword,
// ignoring case. An empty keyword matches every entry. The result is never
// nil and keeps document order.
func (c *Catalog) Search(keyword string) []Entry {
	needle := cases.Fold().String(keyword)
	out := make([]Entry, 0)

	for i, pos := range c.order {
		if keyword == "" || slices.ContainsFunc(c.haystacks[i], func(field string) bool {
			return strings.Contains(field, needle)
		}) {
			out = append(out, cloneEntry(c.sections[pos.section].Entries[pos.entry]))
		}
	}

	return out
}

// Len returns the number of entries across all sections.
func (c *Catalog) Len() int {
	return len(c.order)
}

// SectionCount returns the number of sections.
func (c *Catalog) SectionCount() int {
	return len(c.sections)
}

// Equal reports whether two catalogs hold the same content in the same order.
func (c *Catalog) Equal(other *Catalog) bool {
	if c == nil || other == nil {
		return c == other
	}

	if c.title != other.title {
		return false
	}

	return slices.EqualFunc(c.sections, other.sections, func(a, b Section) bool {
		return a.ID == b.ID && a.Title == b.Title && slices.EqualFunc(a.Entries, b.Entries, Entry.Equal)
	})
}

// Equal reports whether two entries hold the same content.
func (e Entry) Equal(other Entry) bool {
	return e.ID == other.ID &&
		e.SectionID == other.SectionID &&
		e.Title == other.Title &&
		e.After == other.After &&
		e.Rationale == other.Rationale &&
		slices.Equal(e.Before, other.Before) &&
		slices.Equal(e.References, other.References)
}

// Slugify lowercases s and joins its letter and digit runs with hyphens.
// "Looping over a collection" becomes "looping-over-a-collection".
func Slugify(s string) string {
	var b strings.Builder

	pendingDash := false

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingDash = false

			b.WriteRune(r)

			continue
		}

		pendingDash = true
	}

	return b.String()
}

func cloneSection(s Section) Section {
	s.Entries = cloneEntries(s.Entries)
	return s
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = cloneEntry(entries[i])
	}

	return out
}

func cloneEntry(e Entry) Entry {
	e.Before = slices.Clone(e.Before)
	e.References = slices.Clone(e.References)

	return e
}

package dto

import (
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// IDRequest binds the :id path parameter of section and entry routes.
type IDRequest struct {
	ID string `uri:"id" validate:"notblank,max=200"`
}

// SearchRequest binds GET /api/v1/search. An empty Query matches every
// entry.
type SearchRequest struct {
	Query string `form:"q" validate:"max=200,printable"`
	PaginationRequest
}

// RenderRequest binds GET /api/v1/render.
type RenderRequest struct {
	Format string `form:"format"`
}

// ReferenceResponse is an external link.
type ReferenceResponse struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// SnippetResponse is one "before" variant.
type SnippetResponse struct {
	Label string `json:"label,omitempty"`
	Code  string `json:"code"`
}

// EntryResponse is one idiom.
type EntryResponse struct {
	ID         string              `json:"id"`
	SectionID  string              `json:"sectionId"`
	Title      string              `json:"title"`
	References []ReferenceResponse `json:"references,omitempty"`
	Before     []SnippetResponse   `json:"before"`
	After      string              `json:"after"`
	Rationale  string              `json:"rationale,omitempty"`
}

// SectionSummaryResponse describes a section without its entries.
type SectionSummaryResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	EntryCount int    `json:"entryCount"`
}

// SectionResponse is a section with its entries.
type SectionResponse struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Entries []EntryResponse `json:"entries"`
}

// CatalogResponse is the full export served at GET /api/v1/catalog and
// read back by remote catalog sources.
type CatalogResponse struct {
	Title    string            `json:"title"`
	Sections []SectionResponse `json:"sections"`
}

// NewEntryResponse converts a domain entry.
func NewEntryResponse(e domain.Entry) EntryResponse {
	resp := EntryResponse{
		ID:        e.ID,
		SectionID: e.SectionID,
		Title:     e.Title,
		Before:    make([]SnippetResponse, len(e.Before)),
		After:     e.After,
		Rationale: e.Rationale,
	}

	for i, b := range e.Before {
		resp.Before[i] = SnippetResponse{Label: b.Label, Code: b.Code}
	}

	for _, r := range e.References {
		resp.References = append(resp.References, ReferenceResponse{Title: r.Title, URL: r.URL})
	}

	return resp
}

// NewEntryResponses converts entries, keeping their order. The result is
// never nil.
func NewEntryResponses(entries []domain.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = NewEntryResponse(entries[i])
	}

	return out
}

// NewSectionResponse converts a section and its entries.
func NewSectionResponse(s domain.Section) SectionResponse {
	return SectionResponse{
		ID:      s.ID,
		Title:   s.Title,
		Entries: NewEntryResponses(s.Entries),
	}
}

// NewSectionSummaries converts section summaries.
func NewSectionSummaries(summaries []domain.SectionSummary) []SectionSummaryResponse {
	out := make([]SectionSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = SectionSummaryResponse{ID: s.ID, Title: s.Title, EntryCount: s.EntryCount}
	}

	return out
}

// NewCatalogResponse converts a whole catalog.
func NewCatalogResponse(c *domain.Catalog) CatalogResponse {
	sections := c.Sections()

	resp := CatalogResponse{
		Title:    c.Title(),
		Sections: make([]SectionResponse, len(sections)),
	}

	for i, s := range sections {
		resp.Sections[i] = NewSectionResponse(s)
	}

	return resp
}

// EntryID names an entry response for pagination cursors.
func EntryID(e EntryResponse) string {
	return e.ID
}

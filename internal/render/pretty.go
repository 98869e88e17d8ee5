package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// Theme styles the pretty renderer.
type Theme struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Entry     lipgloss.Style
	Label     lipgloss.Style
	Before    lipgloss.Style
	After     lipgloss.Style
	Rationale lipgloss.Style
	Link      lipgloss.Style
}

// DefaultTheme is the theme used by the "pretty" format.
func DefaultTheme() Theme {
	code := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder())

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Underline(true),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginTop(1),
		Entry:     lipgloss.NewStyle().Bold(true),
		Label:     lipgloss.NewStyle().Faint(true),
		Before:    code.BorderForeground(lipgloss.Color("203")),
		After:     code.BorderForeground(lipgloss.Color("42")),
		Rationale: lipgloss.NewStyle().Italic(true).Faint(true),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
	}
}

// Pretty renders a catalog for terminals.
type Pretty struct {
	theme Theme
}

// NewPretty returns a pretty renderer using theme.
func NewPretty(theme Theme) *Pretty {
	return &Pretty{theme: theme}
}

// Render implements Renderer.
func (p *Pretty) Render(w io.Writer, c *domain.Catalog) error {
	out := newErrWriter(w)
	out.printf("%s\n", p.theme.Title.Render(catalogTitle(c)))

	for _, s := range sectionsOf(c) {
		out.printf("%s\n", p.theme.Section.Render(s.Title))

		for _, e := range s.Entries {
			out.printf("\n%s\n", p.Entry(e))
		}
	}

	return out.flush()
}

// Entry renders one entry block.
func (p *Pretty) Entry(e domain.Entry) string {
	var b strings.Builder

	b.WriteString(p.theme.Entry.Render(e.Title))
	b.WriteString(" " + p.theme.Label.Render("("+e.ID+")"))

	for i, s := range e.Before {
		b.WriteString("\n" + p.theme.Label.Render(snippetLabel(s, i, len(e.Before))))
		b.WriteString("\n" + p.theme.Before.Render(strings.TrimRight(s.Code, "\n")))
	}

	b.WriteString("\n" + p.theme.Label.Render("Better"))
	b.WriteString("\n" + p.theme.After.Render(strings.TrimRight(e.After, "\n")))

	if e.Rationale != "" {
		b.WriteString("\n" + p.theme.Rationale.Render(e.Rationale))
	}

	for _, r := range e.References {
		b.WriteString("\n" + p.theme.Link.Render(r.URL))
	}

	return b.String()
}

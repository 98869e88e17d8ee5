package render

import (
	"io"
	"strings"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

type textRenderer struct{}

func (textRenderer) Render(w io.Writer, c *domain.Catalog) error {
	out := newErrWriter(w)

	title := catalogTitle(c)
	out.printf("%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))

	for _, s := range sectionsOf(c) {
		out.printf("\n%s\n%s\n", s.Title, strings.Repeat("-", len([]rune(s.Title))))

		for _, e := range s.Entries {
			out.printf("\n* %s [%s]\n", e.Title, e.ID)

			for i, b := range e.Before {
				out.printf("\n  %s:\n%s\n", snippetLabel(b, i, len(e.Before)), indent(b.Code, "    "))
			}

			out.printf("\n  Better:\n%s\n", indent(e.After, "    "))

			if e.Rationale != "" {
				out.printf("\n  %s\n", e.Rationale)
			}

			for _, r := range e.References {
				if r.Title != "" {
					out.printf("  See: %s <%s>\n", r.Title, r.URL)
				} else {
					out.printf("  See: %s\n", r.URL)
				}
			}
		}
	}

	return out.flush()
}

package render

import (
	"io"
	"strings"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// codeFence is the language tag on fenced snippets.
const codeFence = "python"

type markdownRenderer struct{}

func (markdownRenderer) Render(w io.Writer, c *domain.Catalog) error {
	out := newErrWriter(w)

	out.printf("# %s\n", catalogTitle(c))

	sections := sectionsOf(c)
	if len(sections) > 1 {
		out.printf("\n")
		for _, s := range sections {
			out.printf("- [%s](#%s)\n", s.Title, s.ID)
		}
	}

	for _, s := range sections {
		out.printf("\n## %s\n", s.Title)

		for _, e := range s.Entries {
			out.printf("\n### %s\n", e.Title)

			for i, b := range e.Before {
				out.printf("\n%s:\n\n%s\n", snippetLabel(b, i, len(e.Before)), fence(b.Code))
			}

			out.printf("\nBetter:\n\n%s\n", fence(e.After))

			if e.Rationale != "" {
				out.printf("\n> %s\n", strings.ReplaceAll(e.Rationale, "\n", "\n> "))
			}

			if len(e.References) > 0 {
				out.printf("\n")
			}

			for _, r := range e.References {
				label := r.Title
				if label == "" {
					label = r.URL
				}

				out.printf("- [%s](%s)\n", label, r.URL)
			}
		}
	}

	return out.flush()
}

// fence wraps code in a fence longer than any backtick run inside it.
func fence(code string) string {
	ticks := "```"
	for strings.Contains(code, ticks) {
		ticks += "`"
	}

	return ticks + codeFence + "\n" + strings.TrimRight(code, "\n") + "\n" + ticks
}

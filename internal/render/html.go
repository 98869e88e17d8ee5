package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

//go:embed templates/catalog.html.tmpl
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog.html.tmpl"))

type htmlRenderer struct {
	tmpl *template.Template
}

func newHTMLRenderer() htmlRenderer {
	return htmlRenderer{tmpl: catalogTemplate}
}

type htmlPage struct {
	Title    string
	Sections []domain.Section
}

func (r htmlRenderer) Render(w io.Writer, c *domain.Catalog) error {
	sections := sectionsOf(c)

	// Labels are filled in so the template stays free of numbering logic.
	for si := range sections {
		for ei := range sections[si].Entries {
			e := &sections[si].Entries[ei]
			for bi := range e.Before {
				e.Before[bi].Label = snippetLabel(e.Before[bi], bi, len(e.Before))
			}
		}
	}

	out := newErrWriter(w)
	if err := r.tmpl.Execute(out.w, htmlPage{Title: catalogTitle(c), Sections: sections}); err != nil {
		return err
	}

	return out.flush()
}

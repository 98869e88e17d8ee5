// Package render writes a catalog as a document in document order.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPretty   Format = "pretty"
)

var aliases = map[string]Format{
	"text":     FormatText,
	"txt":      FormatText,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
	"pretty":   FormatPretty,
}

// Formats lists the canonical format names.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatPretty}
}

// ParseFormat resolves a format name or alias, case-insensitively.
func ParseFormat(name string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}

	names := make([]string, 0, len(aliases))
	for _, f := range Formats() {
		names = append(names, string(f))
	}

	return "", domain.NewValidationErrorWithValue("format",
		"must be one of "+strings.Join(names, ", "), name)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Renderer writes a whole catalog.
type Renderer interface {
	Render(w io.Writer, c *domain.Catalog) error
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return textRenderer{}, nil
	case FormatMarkdown:
		return markdownRenderer{}, nil
	case FormatHTML:
		return newHTMLRenderer(), nil
	case FormatPretty:
		return NewPretty(DefaultTheme()), nil
	default:
		_, err := ParseFormat(string(f))
		return nil, err
	}
}

// Render writes c to w in the named format.
func Render(w io.Writer, format string, c *domain.Catalog) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	r, err := New(f)
	if err != nil {
		return err
	}

	return r.Render(w, c)
}

// errWriter remembers the first write error so renderers can write
// unconditionally and check once.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func newErrWriter(w io.Writer) *errWriter {
	return &errWriter{w: bufio.NewWriter(w)}
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}

func (e *errWriter) flush() error {
	if e.err != nil {
		return e.err
	}

	return e.w.Flush()
}

func snippetLabel(s domain.Snippet, i, n int) string {
	switch {
	case s.Label != "":
		return s.Label
	case n > 1:
		return fmt.Sprintf("Before (%d)", i+1)
	default:
		return "Before"
	}
}

func indent(code, prefix string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}

	return strings.Join(lines, "\n")
}

func catalogTitle(c *domain.Catalog) string {
	if t := c.Title(); t != "" {
		return t
	}

	return "Idiom Catalog"
}

// sectionsOf returns copies that renderers may modify.
func sectionsOf(c *domain.Catalog) []domain.Section {
	return c.Sections()
}

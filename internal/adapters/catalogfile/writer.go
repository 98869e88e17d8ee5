package catalogfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

var _ ports.CatalogSink = (*Writer)(nil)

// Writer saves catalogs to a YAML or JSON file.
// The file is replaced atomically through a temporary file in the same directory.
type Writer struct {
	path   string
	format Format
}

// NewWriter creates a writer for path, picking the encoding from its extension.
func NewWriter(path string) (*Writer, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return &Writer{path: path, format: format}, nil
}

// Name implements ports.CatalogSink.
func (w *Writer) Name() string {
	return "file:" + w.path
}

// Save implements ports.CatalogSink.
func (w *Writer) Save(ctx context.Context, c *domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, w.format, c); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("replacing %s: %w", w.path, err)
	}

	return nil
}

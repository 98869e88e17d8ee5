package catalogfile

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/ports"
)

//go:embed builtin/idioms.yaml
var builtinYAML []byte

// BuiltinName is the source name of the embedded catalog.
const BuiltinName = "builtin"

var (
	_ ports.CatalogSource = (*FileSource)(nil)
	_ ports.CatalogSource = (*BuiltinSource)(nil)
)

// FileSource loads a catalog from a YAML or JSON file.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a file source. An empty name defaults to "file:<path>".
func NewFileSource(name, path string) *FileSource {
	if name == "" {
		name = "file:" + path
	}

	return &FileSource{name: name, path: path}
}

// Name implements ports.CatalogSource.
func (s *FileSource) Name() string {
	return s.name
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements ports.CatalogSource.
func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(s.path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewNotFoundError("catalog file", s.path)
		}

		return nil, domain.NewUnavailableError(s.name, err.Error())
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}

	return c, nil
}

// BuiltinSource serves the catalog compiled into the binary.
type BuiltinSource struct{}

// NewBuiltinSource creates the embedded catalog source.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Name implements ports.CatalogSource.
func (*BuiltinSource) Name() string {
	return BuiltinName
}

// Load implements ports.CatalogSource.
func (*BuiltinSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Builtin()
}

// Builtin returns the embedded catalog. It is decoded once and shared;
// catalogs are immutable.
var Builtin = sync.OnceValues(func() (*domain.Catalog, error) {
	c, err := Decode(bytes.NewReader(builtinYAML), FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}

	return c, nil
})

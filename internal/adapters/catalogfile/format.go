// Package catalogfile reads and writes idiom catalogs as YAML or JSON
// documents and ships the built-in catalog embedded in the binary.
package catalogfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", domain.NewValidationErrorWithValue("path", "unsupported catalog file extension", path)
	}
}

// Decode reads one catalog document and validates it.
func Decode(r io.Reader, format Format) (*domain.Catalog, error) {
	var doc document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)

		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("", "decoding yaml: "+err.Error())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()

		if err := dec.Decode(&doc); err != nil {
			return nil, domain.NewValidationError("", "decoding json: "+err.Error())
		}
	default:
		return nil, domain.NewValidationErrorWithValue("format", "unsupported catalog format", string(format))
	}

	return doc.toDomain()
}

// Encode writes the catalog as one document.
func Encode(w io.Writer, format Format, c *domain.Catalog) error {
	doc := fromDomain(c)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	default:
		return domain.NewValidationErrorWithValue("format", "unsupported catalog format", string(format))
	}
}

// Marshal is Encode into a byte slice.
func Marshal(format Format, c *domain.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, format, c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

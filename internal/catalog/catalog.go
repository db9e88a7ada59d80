// Package catalog holds the display modes, orientations and languages a
// manifest can be edited with.
//
// A built-in catalog is embedded; a YAML or TOML file can replace it. The
// first display and orientation are the defaults the generator fills into a
// freshly fetched manifest.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
)

//go:embed catalog.yaml
var builtin []byte

// Catalog is an immutable set of selectable modes
type Catalog struct {
	doc Document
}

// Document is the on-disk and over-the-wire shape of a catalog
type Document struct {
	Displays     []types.Mode `json:"displays" yaml:"displays" toml:"displays"`
	Orientations []types.Mode `json:"orientations" yaml:"orientations" toml:"orientations"`
	Languages    []types.Mode `json:"languages" yaml:"languages" toml:"languages"`
}

var (
	defaultCatalog *Catalog
	defaultErr     error
	defaultOnce    sync.Once
)

// Default returns the embedded catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(builtin, FormatYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// Format names a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Load reads a catalog file, choosing the decoder by extension.
// An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog data
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &Catalog{doc: doc}, nil
}

func (d Document) validate() error {
	for _, group := range []struct {
		name  string
		modes []types.Mode
	}{
		{"displays", d.Displays},
		{"orientations", d.Orientations},
	} {
		for i, m := range group.modes {
			if m.Name == "" {
				return fmt.Errorf("%s[%d] has an empty name", group.name, i)
			}
		}
	}
	return nil
}

// Displays returns the display modes in preference order
func (c *Catalog) Displays() []types.Mode {
	return append([]types.Mode(nil), c.doc.Displays...)
}

// Orientations returns the orientation modes in preference order
func (c *Catalog) Orientations() []types.Mode {
	return append([]types.Mode(nil), c.doc.Orientations...)
}

// Languages returns the selectable manifest languages
func (c *Catalog) Languages() []types.Mode {
	return append([]types.Mode(nil), c.doc.Languages...)
}

// DefaultDisplay returns the first display name, or "" for an empty list
func (c *Catalog) DefaultDisplay() string {
	if len(c.doc.Displays) == 0 {
		return ""
	}
	return c.doc.Displays[0].Name
}

// DefaultOrientation returns the first orientation name, or "" for an empty list
func (c *Catalog) DefaultOrientation() string {
	if len(c.doc.Orientations) == 0 {
		return ""
	}
	return c.doc.Orientations[0].Name
}

// Document returns a copy of the catalog contents
func (c *Catalog) Document() Document {
	return Document{
		Displays:     c.Displays(),
		Orientations: c.Orientations(),
		Languages:    c.Languages(),
	}
}

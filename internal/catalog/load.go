package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// venueSchema constrains CUE catalog files before decoding.
const venueSchema = `
#Venue: {
	key:  string & =~"^[A-Za-z0-9_-]+$"
	name: string & !=""
}
#Catalog: {
	venues: [...#Venue]
}
`

// file is the on-disk catalog document.
type file struct {
	Venues []Venue `json:"venues" yaml:"venues"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := ParseYAML(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c *Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c, err = ParseYAML(data)
	case ".cue":
		c, err = ParseCUE(path, data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q: use .yaml, .yml or .cue", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseYAML parses a YAML catalog document.
// Unknown fields are rejected.
func ParseYAML(data []byte) (*Catalog, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return New(f.Venues...)
}

// ParseCUE evaluates a CUE catalog document against the venue schema.
// filename is used for error positions only.
func ParseCUE(filename string, data []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(venueSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile CUE: %w", err)
	}

	v = schema.LookupPath(cue.ParsePath("#Catalog")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate CUE: %w", err)
	}

	var f file
	if err := v.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode CUE: %w", err)
	}
	return New(f.Venues...)
}

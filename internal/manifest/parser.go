package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"
)

// FileName is the manifest's name at the root of a template tree.
const FileName = "manifest.yaml"

// ErrUnknownTemplate is returned for a template name the manifest does not
// declare.
var ErrUnknownTemplate = errors.New("unknown template")

// ErrInvalid is returned when the manifest does not conform to its schema.
var ErrInvalid = errors.New("invalid template manifest")

// Parse validates data against the manifest schema and decodes it.
func Parse(data []byte) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, result)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses the manifest at path within fsys.
func Load(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// CheckTemplate returns ErrUnknownTemplate, listing the available names,
// when name is not declared.
func (m *Manifest) CheckTemplate(name string) error {
	if _, ok := m.Template(name); ok {
		return nil
	}
	return fmt.Errorf("%w %q. Available templates: %s",
		ErrUnknownTemplate, name, strings.Join(m.TemplateNames(), ", "))
}

// matchSource matches an asset source glob against an entry name. A
// malformed pattern matches nothing; the schema rejects empty ones.
func matchSource(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Feature names a toggle that gates assets, dependencies and scripts.
type Feature string

// Known feature toggles, in the order they are resolved.
const (
	FeatureLint   Feature = "lint"
	FeatureFormat Feature = "format"
	FeatureGit    Feature = "git"
	FeatureEnv    Feature = "env"
)

// Features lists every feature in resolution order.
var Features = []Feature{FeatureLint, FeatureFormat, FeatureGit, FeatureEnv}

// Manifest is the parsed manifest.yaml.
type Manifest struct {
	Baseline  Baseline                `yaml:"baseline" json:"baseline"`
	Templates []Template              `yaml:"templates" json:"templates"`
	Assets    []Asset                 `yaml:"assets,omitempty" json:"assets,omitempty"`
	Features  map[Feature]FeatureSpec `yaml:"features,omitempty" json:"features,omitempty"`
	Combos    []Combo                 `yaml:"combos,omitempty" json:"combos,omitempty"`
}

// Baseline holds the dependencies every generated project receives.
type Baseline struct {
	Dependencies    []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies []string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
}

// Template is one selectable project template. Its files live in the
// directory of the same name.
type Template struct {
	Name            string   `yaml:"name" json:"name"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies    []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies []string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
}

// Asset gates shared files. Source is a glob matched against entry names of
// the common directory; the first matching asset decides.
type Asset struct {
	Source string `yaml:"source" json:"source"`
	// Target renames the entry at the destination.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	// When lists features that must all be enabled.
	When []Feature `yaml:"when,omitempty" json:"when,omitempty"`
	// Unless lists features that, when all enabled, exclude the entry.
	Unless []Feature `yaml:"unless,omitempty" json:"unless,omitempty"`
}

// FeatureSpec is what enabling a feature adds to the project.
type FeatureSpec struct {
	Dependencies    []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies []string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	Scripts         Scripts  `yaml:"scripts,omitempty" json:"scripts,omitempty"`
}

// Combo adds dependencies when all of its features are enabled together.
type Combo struct {
	Features        []Feature `yaml:"features" json:"features"`
	Dependencies    []string  `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies []string  `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
}

// Script is one package.json script entry.
type Script struct {
	Name    string
	Command string
}

// Scripts is a YAML mapping decoded in document order.
type Scripts []Script

// UnmarshalYAML keeps the key order of the mapping node.
func (s *Scripts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: scripts must be a mapping", node.Line)
	}
	out := make(Scripts, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: script %q must be a string", val.Line, key.Value)
		}
		out = append(out, Script{Name: key.Value, Command: val.Value})
	}
	*s = out
	return nil
}

// Enabled reports which features are on.
type Enabled map[Feature]bool

// All reports whether every feature in fs is enabled. An empty list is
// trivially satisfied.
func (e Enabled) All(fs []Feature) bool {
	for _, f := range fs {
		if !e[f] {
			return false
		}
	}
	return true
}

// Template returns the template named name.
func (m *Manifest) Template(name string) (Template, bool) {
	for _, t := range m.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateNames returns the closed set of template identifiers in
// declaration order.
func (m *Manifest) TemplateNames() []string {
	names := make([]string, len(m.Templates))
	for i, t := range m.Templates {
		names[i] = t.Name
	}
	return names
}

// Scripts returns the scripts contributed by the enabled features, in
// feature order and then declaration order.
func (m *Manifest) Scripts(enabled Enabled) Scripts {
	var out Scripts
	for _, f := range Features {
		if enabled[f] {
			out = append(out, m.Features[f].Scripts...)
		}
	}
	return out
}

// Asset returns the first asset whose source glob matches name.
func (m *Manifest) Asset(name string) (Asset, bool) {
	for _, a := range m.Assets {
		if matchSource(a.Source, name) {
			return a, true
		}
	}
	return Asset{}, false
}

// Included reports whether the asset is selected for the enabled features.
func (a Asset) Included(enabled Enabled) bool {
	if !enabled.All(a.When) {
		return false
	}
	if len(a.Unless) > 0 && enabled.All(a.Unless) {
		return false
	}
	return true
}

package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
)

// Entries with special handling in a template directory.
const (
	PackageJSON = "package.json"
	Readme      = "README.md"
)

// ErrDuplicateTarget is returned when two selected entries would be written
// to the same destination.
var ErrDuplicateTarget = errors.New("duplicate destination")

// renames maps template source names that cannot be shipped as dotfiles to
// their real names. Asset targets in the manifest take precedence.
var renames = map[string]string{
	"_gitignore":                 ".gitignore",
	"_eslint.config.js":          "eslint.config.js",
	"_eslint.prettier.config.js": "eslint.config.js",
	"_prettierrc.json":           ".prettierrc.json",
	"_prettierignore":            ".prettierignore",
	"_env":                       ".env",
}

// Entry is one top-level entry to materialize.
type Entry struct {
	// Source is the entry path within the template tree.
	Source string
	// SourceRoot is the directory Source was listed from.
	SourceRoot string
	// Dest is the entry name at the project root.
	Dest  string
	IsDir bool
}

// Plan is the ordered list of entries to copy.
type Plan []Entry

// Dests returns the destination names in plan order.
func (p Plan) Dests() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Dest
	}
	return out
}

// Select computes the plan for template from the listings of its directory
// and the common directory. Template entries other than package.json and
// README.md are always taken. A common entry follows the first asset rule
// matching its name and is taken unconditionally when none matches.
func Select(m *manifest.Manifest, template string, enabled manifest.Enabled, templateEntries, commonEntries []fs.DirEntry) (Plan, error) {
	var plan Plan
	for _, e := range templateEntries {
		if e.Name() == PackageJSON || e.Name() == Readme {
			continue
		}
		plan = append(plan, Entry{
			Source:     path.Join(template, e.Name()),
			SourceRoot: template,
			Dest:       destName(e.Name(), ""),
			IsDir:      e.IsDir(),
		})
	}

	for _, e := range commonEntries {
		var target string
		if asset, ok := m.Asset(e.Name()); ok {
			if !asset.Included(enabled) {
				continue
			}
			target = asset.Target
		}
		plan = append(plan, Entry{
			Source:     path.Join(CommonDir, e.Name()),
			SourceRoot: CommonDir,
			Dest:       destName(e.Name(), target),
			IsDir:      e.IsDir(),
		})
	}

	seen := make(map[string]string, len(plan))
	for _, e := range plan {
		if prev, ok := seen[e.Dest]; ok {
			return nil, fmt.Errorf("%w %s: both %s and %s selected", ErrDuplicateTarget, e.Dest, prev, e.Source)
		}
		seen[e.Dest] = e.Source
	}
	return plan, nil
}

// Plan lists the template and common directories and selects from them.
func (s *Source) Plan(template string, enabled manifest.Enabled) (Plan, error) {
	templateEntries, err := fs.ReadDir(s.FS, template)
	if err != nil {
		return nil, fmt.Errorf("%w: reading template %q: %w", ErrMissingAssets, template, err)
	}
	commonEntries, err := fs.ReadDir(s.FS, CommonDir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading common files: %w", ErrMissingAssets, err)
	}
	return Select(s.Manifest, template, enabled, templateEntries, commonEntries)
}

func destName(name, target string) string {
	if target != "" {
		return target
	}
	if renamed, ok := renames[name]; ok {
		return renamed
	}
	return name
}

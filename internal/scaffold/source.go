package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/tsx-labs/create-tsx-app/internal/branding"
	"github.com/tsx-labs/create-tsx-app/internal/manifest"
)

//go:embed all:templates
var embedded embed.FS

// CommonDir holds the assets shared by every template.
const CommonDir = "common"

// ErrMissingAssets is returned when the template tree is incomplete.
var ErrMissingAssets = errors.New("template assets not found")

// Source is an opened template tree.
type Source struct {
	FS       fs.FS
	Manifest *manifest.Manifest
	// Origin is the directory the tree was read from, or "embedded".
	Origin string
}

// OpenSource opens the template tree at dir, or the embedded tree when dir
// is empty, and loads its manifest.
func OpenSource(dir string) (*Source, error) {
	var (
		fsys   fs.FS
		origin = dir
	)
	if dir == "" {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("opening embedded templates: %w", err)
		}
		fsys, origin = sub, "embedded"
	} else {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingAssets, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingAssets, dir)
		}
		fsys = os.DirFS(dir)
	}
	return NewSource(fsys, origin)
}

// NewSource loads the manifest of an already opened tree.
func NewSource(fsys fs.FS, origin string) (*Source, error) {
	m, err := manifest.Load(fsys, manifest.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAssets, err)
	}
	return &Source{FS: fsys, Manifest: m, Origin: origin}, nil
}

// Check verifies the tree has everything template needs. It returns
// manifest.ErrUnknownTemplate for undeclared names and ErrMissingAssets for
// missing directories or package.json.
func (s *Source) Check(template string) error {
	if err := s.Manifest.CheckTemplate(template); err != nil {
		return err
	}
	if !isDir(s.FS, template) {
		return fmt.Errorf("%w: template %q not found", ErrMissingAssets, template)
	}
	if !isDir(s.FS, CommonDir) {
		return fmt.Errorf("%w: common template files not found", ErrMissingAssets)
	}
	if _, err := fs.Stat(s.FS, path.Join(template, PackageJSON)); err != nil {
		return fmt.Errorf("%w: template %q has no %s", ErrMissingAssets, template, PackageJSON)
	}
	return nil
}

// Remedy is the hint printed with ErrMissingAssets.
func Remedy() string {
	return fmt.Sprintf("Reinstall %s from https://github.com/%s or point --templates-dir at a complete template tree.",
		branding.CLIName(), branding.GitHubRepo())
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

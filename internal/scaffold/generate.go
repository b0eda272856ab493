package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
)

// Options configures Generate.
type Options struct {
	Source      *Source
	Template    string
	PackageName string
	Features    manifest.Enabled
	// Fs is the destination filesystem and Root the project directory on it.
	// Root must already exist.
	Fs   afero.Fs
	Root string
	// DryRun computes the result without writing anything.
	DryRun bool
}

// Result holds the outcome of a generation.
type Result struct {
	Root string
	// Files lists the generated files relative to Root.
	Files    []string
	Warnings []string
}

// Generate copies the selected template entries, then writes package.json
// and the README. Errors from the copy wrap the failing entry's name.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	src := opts.Source
	if err := src.Check(opts.Template); err != nil {
		return nil, err
	}

	plan, err := src.Plan(opts.Template, opts.Features)
	if err != nil {
		return nil, err
	}
	slog.Debug("file plan", "template", opts.Template, "entries", plan.Dests())

	pkg, err := fs.ReadFile(src.FS, path.Join(opts.Template, PackageJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrMissingAssets, PackageJSON, err)
	}
	pkg, err = RewritePackageJSON(pkg, opts.PackageName, src.Manifest.Scripts(opts.Features))
	if err != nil {
		return nil, err
	}

	readme, err := fs.ReadFile(src.FS, path.Join(opts.Template, Readme))
	hasReadme := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", Readme, err)
	}

	res := &Result{Root: opts.Root}

	if opts.DryRun {
		files, err := plannedFiles(src.FS, plan)
		if err != nil {
			return nil, err
		}
		res.Files = append(files, PackageJSON)
		if hasReadme {
			res.Files = append(res.Files, Readme)
		}
		return res, nil
	}

	res.Warnings = overwritten(opts.Fs, opts.Root, src.FS, plan, hasReadme)

	files, err := Copy(ctx, src.FS, opts.Fs, opts.Root, plan)
	res.Files = files
	if err != nil {
		return res, err
	}

	if err := writeFile(opts.Fs, opts.Root, PackageJSON, pkg); err != nil {
		return res, err
	}
	res.Files = append(res.Files, PackageJSON)

	if hasReadme {
		if err := writeFile(opts.Fs, opts.Root, Readme, RenderReadme(readme, opts.PackageName)); err != nil {
			return res, err
		}
		res.Files = append(res.Files, Readme)
	}
	return res, nil
}

func writeFile(dst afero.Fs, root, name string, data []byte) error {
	if err := afero.WriteFile(dst, filepath.Join(root, name), data, fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// overwritten reports pre-existing files the generation replaces. This only
// happens when the user chose to keep a non-empty target.
func overwritten(dst afero.Fs, root string, src fs.FS, plan Plan, hasReadme bool) []string {
	files, err := plannedFiles(src, plan)
	if err != nil {
		return nil
	}
	files = append(files, PackageJSON)
	if hasReadme {
		files = append(files, Readme)
	}

	var warnings []string
	for _, f := range files {
		exists, err := afero.Exists(dst, filepath.Join(root, filepath.FromSlash(f)))
		if err == nil && exists {
			warnings = append(warnings, fmt.Sprintf("Overwrote existing %s", f))
		}
	}
	return warnings
}

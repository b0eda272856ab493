// Package target guards the directory a project is generated into: it
// decides whether the directory is usable, asks what to do when it is not,
// and clears it when told to.
package target

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tsx-labs/create-tsx-app/internal/prompt"
)

// GitDir is preserved by emptiness checks and clearing.
const GitDir = ".git"

// Choice is the decision for a non-empty target.
type Choice string

const (
	// ChoiceNone means the target was empty and no decision was needed.
	ChoiceNone   Choice = ""
	ChoiceCancel Choice = "cancel"
	ChoiceRemove Choice = "remove"
	ChoiceIgnore Choice = "ignore"
)

var options = []prompt.Option{
	{Value: string(ChoiceCancel), Label: "Cancel operation"},
	{Value: string(ChoiceRemove), Label: "Remove existing files and continue"},
	{Value: string(ChoiceIgnore), Label: "Ignore files and continue"},
}

// IsEmpty reports whether path is missing, has no entries, or holds only a
// .git directory. A path that is not a directory is never empty.
func IsEmpty(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, nil
	}

	entries, err := afero.ReadDir(fsys, path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	switch len(entries) {
	case 0:
		return true, nil
	case 1:
		return entries[0].Name() == GitDir, nil
	default:
		return false, nil
	}
}

// Decide picks what to do with a non-empty target. overwrite selects
// ChoiceRemove without asking.
func Decide(ctx context.Context, p prompt.Prompter, targetDir string, overwrite bool) (Choice, error) {
	if overwrite {
		return ChoiceRemove, nil
	}
	subject := fmt.Sprintf("Target %q", targetDir)
	if targetDir == "." {
		subject = "Current directory"
	}
	answer, err := p.Select(ctx, subject+" is not empty. Please choose how to proceed:", options, string(ChoiceCancel))
	if err != nil {
		return ChoiceNone, err
	}
	return Choice(answer), nil
}

// Clear removes every entry of path except .git. A missing path is a no-op.
func Clear(fsys afero.Fs, path string) error {
	entries, err := afero.ReadDir(fsys, path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, e := range entries {
		if e.Name() == GitDir {
			continue
		}
		if err := fsys.RemoveAll(filepath.Join(path, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Prepare clears path when choice is ChoiceRemove and makes sure it exists.
func Prepare(fsys afero.Fs, path string, choice Choice) error {
	if choice == ChoiceRemove {
		if err := Clear(fsys, path); err != nil {
			return fmt.Errorf("emptying %s: %w", path, err)
		}
	}
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}

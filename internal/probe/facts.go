package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// ErrPackageManagerMissing is returned when the selected package manager
// cannot be invoked.
var ErrPackageManagerMissing = errors.New("package manager not available")

// Facts is everything the scaffolder learns about its environment. It is
// produced once by Probe and never modified.
type Facts struct {
	Runtime                 VersionCheck
	PackageManager          PackageManager
	PackageManagerSource    Source
	PackageManagerAvailable bool
	GitAvailable            bool
	Warnings                []string
}

// Options tunes Probe.
type Options struct {
	// MinNodeVersion is the lowest acceptable Node.js version.
	MinNodeVersion string
	// PackageManager overrides detection when non-empty.
	PackageManager string
}

// Probe gathers Facts. It never fails on a missing tool; call Validate to
// turn the facts into fatal errors.
func Probe(ctx context.Context, r shell.Runner, env Env, opts Options) *Facts {
	f := &Facts{}

	current, err := RuntimeVersion(ctx, r)
	if err != nil {
		slog.Debug("node version probe failed", "err", err)
	}
	f.Runtime = ValidateRuntimeVersion(current, opts.MinNodeVersion)

	if opts.PackageManager != "" {
		if pm, ok := ParsePackageManager(opts.PackageManager); ok {
			f.PackageManager, f.PackageManagerSource = pm, SourceOverride
		} else {
			f.Warnings = append(f.Warnings,
				fmt.Sprintf("Unknown package manager: %s. Falling back to %s.", opts.PackageManager, DefaultPackageManager))
			f.PackageManager, f.PackageManagerSource = DefaultPackageManager, SourceDefault
		}
	} else {
		f.PackageManager, f.PackageManagerSource = DetectPackageManager(env)
	}
	slog.Debug("package manager detected", "pm", f.PackageManager, "source", f.PackageManagerSource)

	f.PackageManagerAvailable = IsToolAvailable(ctx, r, string(f.PackageManager))
	f.GitAvailable = IsToolAvailable(ctx, r, "git")

	return f
}

// Validate returns a fatal error when the environment cannot scaffold a project.
func (f *Facts) Validate() error {
	if !f.Runtime.Valid {
		current := f.Runtime.Current
		if current == "" {
			current = "none"
		}
		return fmt.Errorf("%w: Node.js version %s or higher is required, you are using %s",
			ErrUnsupportedRuntime, f.Runtime.Required, current)
	}
	if !f.PackageManagerAvailable {
		return fmt.Errorf("%w: package manager %q is not installed or not available",
			ErrPackageManagerMissing, f.PackageManager)
	}
	return nil
}

// Remedy returns the remediation hint for a Validate error.
func Remedy(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedRuntime):
		return "Please update Node.js: https://nodejs.org/"
	case errors.Is(err, ErrPackageManagerMissing):
		return "Install the package manager or choose another with --package-manager."
	default:
		return ""
	}
}

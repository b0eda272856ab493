package cli

import (
	"errors"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/probe"
	"github.com/tsx-labs/create-tsx-app/internal/prompt"
	"github.com/tsx-labs/create-tsx-app/internal/report"
	"github.com/tsx-labs/create-tsx-app/internal/scaffold"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFatal     = 1
	ExitCancelled = 130
)

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, prompt.ErrCancelled):
		return ExitCancelled
	default:
		return ExitFatal
	}
}

func printError(rep *report.Reporter, err error) {
	if errors.Is(err, prompt.ErrCancelled) {
		rep.Cancel("Operation cancelled")
		return
	}
	rep.Error(err.Error())
	if hint := remedy(err); hint != "" {
		rep.Info(hint)
	}
}

func remedy(err error) string {
	switch {
	case errors.Is(err, probe.ErrUnsupportedRuntime), errors.Is(err, probe.ErrPackageManagerMissing):
		return probe.Remedy(err)
	case errors.Is(err, manifest.ErrUnknownTemplate):
		return "Run with --list-templates to see the available templates."
	case errors.Is(err, scaffold.ErrMissingAssets), errors.Is(err, manifest.ErrInvalid):
		return scaffold.Remedy()
	default:
		return ""
	}
}

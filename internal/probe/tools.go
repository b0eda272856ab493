package probe

import (
	"context"
	"log/slog"

	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// IsToolAvailable reports whether `<name> --version` runs and exits 0.
// Any failure, including "not found", yields false.
func IsToolAvailable(ctx context.Context, r shell.Runner, name string) bool {
	out, err := r.Run(ctx, "", name, "--version")
	if err != nil {
		slog.Debug("tool probe failed", "tool", name, "err", err)
		return false
	}
	return out.Succeeded()
}

package cli

import (
	"fmt"

	"github.com/tsx-labs/create-tsx-app/internal/branding"
)

func versionTemplate(b BuildInfo) string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)\n",
		branding.CLIName(), b.Version, b.Commit, b.Date)
}

// Package vcs initializes a git repository in a generated project.
package vcs

import (
	"context"
	"fmt"

	"github.com/tsx-labs/create-tsx-app/internal/report"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// StepName labels the git outcome.
const StepName = "Git initialization"

// CommitMessage is the message of the first commit.
const CommitMessage = "Initial commit"

// InstallHint points users without git at the download page.
const InstallHint = "Install Git to enable repository initialization: https://git-scm.com/downloads"

// Remedy is the manual equivalent of Init.
var Remedy = fmt.Sprintf("git init && git add -A && git commit -m %q", CommitMessage)

var steps = [][]string{
	{"init"},
	{"add", "-A"},
	{"commit", "-m", CommitMessage},
}

// Init runs git init, add and commit in dir. It stops at the first failure
// and reports it in the outcome rather than as an error.
func Init(ctx context.Context, r shell.Runner, dir string) report.Outcome {
	for _, args := range steps {
		if _, err := shell.Check(ctx, r, dir, "git", args...); err != nil {
			return report.Outcome{
				Step:   StepName,
				Err:    fmt.Errorf("initializing repository: %w", err),
				Remedy: []string{Remedy},
			}
		}
	}
	return report.Outcome{Step: StepName}
}

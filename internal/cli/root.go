package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tsx-labs/create-tsx-app/internal/branding"
	"github.com/tsx-labs/create-tsx-app/internal/probe"
	"github.com/tsx-labs/create-tsx-app/internal/prompt"
	"github.com/tsx-labs/create-tsx-app/internal/report"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Env is everything a run touches outside the process.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Prompter is chosen from the terminal state when nil.
	Prompter prompt.Prompter
	Runner   shell.Runner
	Fs       afero.Fs
	Probe    probe.Env
	Cwd      string
}

func osEnv() (Env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Env{}, err
	}
	return Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Runner: &shell.Exec{},
		Fs:     afero.NewOsFs(),
		Probe:  probe.OSEnv(),
		Cwd:    cwd,
	}, nil
}

// Execute runs the root command with build info injected via ldflags.
// Errors have already been reported when it returns; pass them to ExitCode.
func Execute(version, commit, date string) error {
	env, err := osEnv()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return execute(ctx, env, BuildInfo{Version: version, Commit: commit, Date: date}, os.Args[1:])
}

func execute(ctx context.Context, env Env, build BuildInfo, args []string) error {
	cmd := newRootCmd(env, build)
	cmd.SetArgs(args)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(report.New(env.Stderr), err)
	}
	return err
}

func newRootCmd(env Env, build BuildInfo) *cobra.Command {
	f := newFlags()
	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [target-dir]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds a new TypeScript project that runs on tsx from a
template, installs its dependencies with your package manager and
initializes a git repository.`,
		Example: `  ` + branding.CLIName() + ` my-app
  ` + branding.CLIName() + ` my-api --template express --no-format
  ` + branding.CLIName() + ` . --overwrite --package-manager pnpm
  ` + branding.CLIName() + ` -i`,
		Args:          cobra.MaximumNArgs(1),
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(env.Stderr, f.verbose)
			return runCreate(cmd.Context(), cmd, env, f, args)
		},
	}
	cmd.SetVersionTemplate(versionTemplate(build))
	f.register(cmd)
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

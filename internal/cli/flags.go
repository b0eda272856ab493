package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsx-labs/create-tsx-app/internal/config"
	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/resolve"
)

// toggle is a feature flag with a --no- negation.
type toggle struct {
	feature manifest.Feature
	on, off bool
}

type flags struct {
	overwrite      bool
	force          bool
	interactive    bool
	template       string
	packageManager string
	templatesDir   string
	install        bool
	noInstall      bool
	dryRun         bool
	verbose        bool
	listTemplates  bool

	lint, format, git, env toggle
}

func (f *flags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.overwrite, "overwrite", "o", false, "Remove existing files in the target directory without asking")
	fl.BoolVarP(&f.force, "force", "f", false, "Alias for --overwrite")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Confirm each option interactively")
	fl.StringVarP(&f.template, "template", "t", "", `Template to use (default "basic")`)
	fl.StringVar(&f.packageManager, "package-manager", "", "Package manager to install with (npm, pnpm, yarn, bun)")
	fl.StringVar(&f.templatesDir, "templates-dir", "", "Read templates from this directory instead of the built-in set")
	fl.BoolVar(&f.install, "install", true, "Install dependencies")
	fl.BoolVar(&f.noInstall, "no-install", false, "Skip dependency installation")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Show what would be generated without writing anything")
	fl.BoolVar(&f.verbose, "verbose", false, "Print diagnostic logs and external command output")
	fl.BoolVar(&f.listTemplates, "list-templates", false, "List available templates and exit")

	for _, t := range []struct {
		toggle *toggle
		usage  string
	}{
		{&f.lint, "ESLint configuration and scripts"},
		{&f.format, "Prettier configuration and scripts"},
		{&f.git, "git repository initialization"},
		{&f.env, ".env file and dotenv scripts"},
	} {
		name := string(t.toggle.feature)
		fl.BoolVar(&t.toggle.on, name, true, "Add "+t.usage)
		fl.BoolVar(&t.toggle.off, "no-"+name, false, "Skip "+t.usage)
	}
}

func newFlags() *flags {
	return &flags{
		lint:   toggle{feature: manifest.FeatureLint},
		format: toggle{feature: manifest.FeatureFormat},
		git:    toggle{feature: manifest.FeatureGit},
		env:    toggle{feature: manifest.FeatureEnv},
	}
}

// value resolves a toggle: --no-X or --X=false turn it off, --X turns it
// on, and otherwise the configured default applies.
func (t toggle) value(cmd *cobra.Command, def bool) bool {
	name := string(t.feature)
	switch {
	case cmd.Flags().Changed("no-"+name) && t.off:
		return false
	case cmd.Flags().Changed(name):
		return t.on
	default:
		return def
	}
}

func (f *flags) features(cmd *cobra.Command, s config.Settings) resolve.Features {
	return resolve.Features{
		Lint:   f.lint.value(cmd, s.Lint),
		Format: f.format.value(cmd, s.Format),
		Git:    f.git.value(cmd, s.Git),
		Env:    f.env.value(cmd, s.Env),
	}
}

func (f *flags) installDeps(cmd *cobra.Command, def bool) bool {
	switch {
	case cmd.Flags().Changed("no-install") && f.noInstall:
		return false
	case cmd.Flags().Changed("install"):
		return f.install
	default:
		return def
	}
}

// pick returns the flag value when set, else the configured one.
func pick(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

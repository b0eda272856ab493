package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/prompt"
	"github.com/tsx-labs/create-tsx-app/internal/target"
	"github.com/tsx-labs/create-tsx-app/internal/vcs"
)

// Features holds the feature toggles.
type Features struct {
	Lint   bool
	Format bool
	Git    bool
	Env    bool
}

// Enabled converts the toggles for manifest lookups.
func (f Features) Enabled() manifest.Enabled {
	return manifest.Enabled{
		manifest.FeatureLint:   f.Lint,
		manifest.FeatureFormat: f.Format,
		manifest.FeatureGit:    f.Git,
		manifest.FeatureEnv:    f.Env,
	}
}

// Config is the fully resolved run configuration.
type Config struct {
	// TargetDir is the directory as given, formatted.
	TargetDir string
	// Root is the absolute project directory.
	Root        string
	PackageName string
	Template    string
	Features    Features
	Overwrite   target.Choice
	Install     bool
	// Warnings and Hints are shown to the user before scaffolding starts.
	Warnings []string
	Hints    []string
}

// Input is what the command line and user defaults provide.
type Input struct {
	Args        []string
	Cwd         string
	Overwrite   bool
	Interactive bool
	// Template is the explicit or configured template; TemplateSet records
	// whether it came from the command line.
	Template    string
	TemplateSet bool
	// Features are the flag and config derived toggle defaults.
	Features         Features
	Install          bool
	DefaultTargetDir string
}

// Resolver asks the questions needed to complete an Input.
type Resolver struct {
	Prompter     prompt.Prompter
	Fs           afero.Fs
	GitAvailable bool
	// Templates are offered when the template is chosen interactively.
	Templates []manifest.Template
}

// Resolve runs the resolution steps in order: target directory, the
// decision for a non-empty target, package name, template and toggles.
// It writes nothing. A cancelled prompt or a "cancel" decision returns
// prompt.ErrCancelled.
func (r *Resolver) Resolve(ctx context.Context, in Input) (*Config, error) {
	cfg := &Config{Template: in.Template, Install: in.Install}

	targetDir, err := r.targetDir(ctx, in)
	if err != nil {
		return nil, err
	}
	cfg.TargetDir = targetDir
	cfg.Root = targetDir
	if !filepath.IsAbs(targetDir) {
		cfg.Root = filepath.Join(in.Cwd, targetDir)
	}

	empty, err := target.IsEmpty(r.Fs, cfg.Root)
	if err != nil {
		return nil, err
	}
	if !empty {
		choice, err := target.Decide(ctx, r.Prompter, targetDir, in.Overwrite)
		if err != nil {
			return nil, err
		}
		if choice == target.ChoiceCancel {
			return nil, prompt.ErrCancelled
		}
		cfg.Overwrite = choice
	}

	if cfg.PackageName, err = r.packageName(ctx, filepath.Base(cfg.Root), in.Interactive); err != nil {
		return nil, err
	}

	if in.Interactive && !in.TemplateSet && len(r.Templates) > 1 {
		if cfg.Template, err = r.template(ctx, in.Template); err != nil {
			return nil, err
		}
	}

	if err := r.features(ctx, in, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Resolver) targetDir(ctx context.Context, in Input) (string, error) {
	def := in.DefaultTargetDir
	if def == "" {
		def = DefaultTargetDir
	}
	if len(in.Args) > 0 {
		if dir := FormatTargetDir(in.Args[0]); dir != "" {
			return dir, nil
		}
	}
	dir, err := r.Prompter.Text(ctx, prompt.TextRequest{Message: "Project name:", Default: def})
	if err != nil {
		return "", err
	}
	if dir = FormatTargetDir(dir); dir == "" {
		dir = def
	}
	return dir, nil
}

// packageName normalizes base. Interactive runs whose base name changed
// under normalization confirm the result, so the user sees the rename.
func (r *Resolver) packageName(ctx context.Context, base string, interactive bool) (string, error) {
	candidate := ToValidPackageName(base)
	if candidate == base {
		return candidate, nil
	}
	if !interactive {
		slog.Debug("package name normalized", "from", base, "to", candidate)
		return candidate, nil
	}
	return r.Prompter.Text(ctx, prompt.TextRequest{
		Message: "Package name:",
		Default: candidate,
		Validate: func(name string) string {
			if !IsValidPackageName(name) {
				return InvalidPackageName
			}
			return ""
		},
	})
}

func (r *Resolver) template(ctx context.Context, initial string) (string, error) {
	options := make([]prompt.Option, len(r.Templates))
	for i, t := range r.Templates {
		label := t.Name
		if t.Description != "" {
			label = fmt.Sprintf("%s - %s", t.Name, t.Description)
		}
		options[i] = prompt.Option{Value: t.Name, Label: label}
	}
	return r.Prompter.Select(ctx, "Select a template:", options, initial)
}

func (r *Resolver) features(ctx context.Context, in Input, cfg *Config) error {
	f := in.Features
	confirm := func(msg string, v *bool) error {
		if !in.Interactive {
			return nil
		}
		answer, err := r.Prompter.Confirm(ctx, msg, *v)
		if err != nil {
			return err
		}
		*v = answer
		return nil
	}

	if err := confirm("Add ESLint for code linting?", &f.Lint); err != nil {
		return err
	}
	if err := confirm("Add Prettier for code formatting?", &f.Format); err != nil {
		return err
	}
	if r.GitAvailable {
		if err := confirm("Initialize Git repository?", &f.Git); err != nil {
			return err
		}
	} else {
		f.Git = false
		cfg.Warnings = append(cfg.Warnings, "Git is not installed. Git repository initialization will be skipped.")
		cfg.Hints = append(cfg.Hints, vcs.InstallHint)
	}
	if err := confirm("Setup environment variables (.env file)?", &f.Env); err != nil {
		return err
	}

	cfg.Features = f
	return nil
}

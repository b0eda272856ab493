package resolve

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/prompt"
	"github.com/tsx-labs/create-tsx-app/internal/target"
)

var allFeatures = Features{Lint: true, Format: true, Git: true, Env: true}

func newResolver(p prompt.Prompter, fsys afero.Fs) *Resolver {
	return &Resolver{
		Prompter:     p,
		Fs:           fsys,
		GitAvailable: true,
		Templates: []manifest.Template{
			{Name: "basic", Description: "Minimal"},
			{Name: "express"},
		},
	}
}

func baseInput(args ...string) Input {
	return Input{
		Args:     args,
		Cwd:      "/work",
		Template: "basic",
		Features: allFeatures,
		Install:  true,
	}
}

func TestResolve_NonInteractive(t *testing.T) {
	p := prompt.NewScripted()
	cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), baseInput("my-app/"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.TargetDir != "my-app" || cfg.Root != "/work/my-app" {
		t.Errorf("TargetDir, Root = %q, %q", cfg.TargetDir, cfg.Root)
	}
	if cfg.PackageName != "my-app" {
		t.Errorf("PackageName = %q", cfg.PackageName)
	}
	if cfg.Template != "basic" || !cfg.Install {
		t.Errorf("Template, Install = %q, %v", cfg.Template, cfg.Install)
	}
	if cfg.Features != allFeatures {
		t.Errorf("Features = %+v", cfg.Features)
	}
	if cfg.Overwrite != target.ChoiceNone {
		t.Errorf("Overwrite = %q", cfg.Overwrite)
	}
	if len(p.Asked) != 0 {
		t.Errorf("asked %v in a non-interactive run", p.Asked)
	}
}

func TestResolve_TargetPrompt(t *testing.T) {
	p := prompt.NewScripted("")
	in := baseInput()
	in.DefaultTargetDir = "starter"
	cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetDir != "starter" {
		t.Errorf("TargetDir = %q, want the configured default", cfg.TargetDir)
	}

	p = prompt.NewScripted("  typed-name//  ")
	cfg, err = newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), baseInput())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetDir != "typed-name" {
		t.Errorf("TargetDir = %q, want formatted answer", cfg.TargetDir)
	}
}

func TestResolve_AbsoluteAndCurrentDir(t *testing.T) {
	cfg, err := newResolver(prompt.NewScripted(), afero.NewMemMapFs()).Resolve(context.Background(), baseInput("/srv/Api Server"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/srv/Api Server" || cfg.PackageName != "api-server" {
		t.Errorf("Root, PackageName = %q, %q", cfg.Root, cfg.PackageName)
	}

	in := baseInput(".")
	in.Cwd = "/home/dev/cool-project"
	cfg, err = newResolver(prompt.NewScripted(), afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PackageName != "cool-project" {
		t.Errorf("PackageName = %q, want base of the working directory", cfg.PackageName)
	}
}

func TestResolve_NonEmptyTarget(t *testing.T) {
	newFs := func() afero.Fs {
		fsys := afero.NewMemMapFs()
		_ = afero.WriteFile(fsys, "/work/my-app/index.ts", []byte("x"), 0o644)
		return fsys
	}

	tests := []struct {
		name      string
		overwrite bool
		answers   []any
		want      target.Choice
		wantErr   error
	}{
		{"overwrite flag", true, nil, target.ChoiceRemove, nil},
		{"remove", false, []any{"remove"}, target.ChoiceRemove, nil},
		{"ignore", false, []any{"ignore"}, target.ChoiceIgnore, nil},
		{"cancel", false, []any{"cancel"}, "", prompt.ErrCancelled},
		{"abort", false, []any{prompt.ErrCancelled}, "", prompt.ErrCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput("my-app")
			in.Overwrite = tt.overwrite
			p := prompt.NewScripted(tt.answers...)
			cfg, err := newResolver(p, newFs()).Resolve(context.Background(), in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Overwrite != tt.want {
				t.Errorf("Overwrite = %q, want %q", cfg.Overwrite, tt.want)
			}
		})
	}
}

func TestResolve_GitDirCountsAsEmpty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_ = fsys.MkdirAll("/work/my-app/.git", 0o755)
	p := prompt.NewScripted()
	if _, err := newResolver(p, fsys).Resolve(context.Background(), baseInput("my-app")); err != nil {
		t.Fatal(err)
	}
	if len(p.Asked) != 0 {
		t.Errorf("asked %v for a directory holding only .git", p.Asked)
	}
}

func TestResolve_PackageNamePrompt(t *testing.T) {
	in := baseInput("My App")
	in.Interactive = true
	in.TemplateSet = true

	p := prompt.NewScripted("Still Bad", "", true, true, true, true)
	cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PackageName != "my-app" {
		t.Errorf("PackageName = %q, want the seeded default", cfg.PackageName)
	}
	if !slices.Equal(p.Rejected, []string{InvalidPackageName}) {
		t.Errorf("Rejected = %v", p.Rejected)
	}
	if p.Asked[0] != "Package name:" {
		t.Errorf("first question = %q", p.Asked[0])
	}

	in.Interactive = false
	cfg, err = newResolver(prompt.NewScripted(), afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PackageName != "my-app" {
		t.Errorf("non-interactive PackageName = %q", cfg.PackageName)
	}
}

func TestResolve_PackageNameNormalized(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"my.app", "my-app"},
		{"a_b", "a-b"},
		{"foo~bar.js", "foo~bar-js"},
		{"_private", "private"},
		{"MyApp", "myapp"},
		{"my-app", "my-app"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			p := prompt.NewScripted()
			cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), baseInput(tt.target))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.PackageName != tt.want {
				t.Errorf("PackageName = %q, want %q", cfg.PackageName, tt.want)
			}
			if len(p.Asked) != 0 {
				t.Errorf("non-interactive run asked %v", p.Asked)
			}
		})
	}
}

func TestResolve_PackageNameUnchangedSkipsPrompt(t *testing.T) {
	in := baseInput("my-app")
	in.Interactive = true
	in.TemplateSet = true

	p := prompt.NewScripted(true, true, true, true)
	cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PackageName != "my-app" {
		t.Errorf("PackageName = %q", cfg.PackageName)
	}
	if slices.Contains(p.Asked, "Package name:") {
		t.Errorf("asked for a package name that needed no normalization: %v", p.Asked)
	}
}

func TestResolve_CancelAtPackageName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	in := baseInput("Bad Name")
	in.Interactive = true

	_, err := newResolver(prompt.NewScripted(prompt.ErrCancelled), fsys).Resolve(context.Background(), in)
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("Resolve() error = %v, want ErrCancelled", err)
	}
	if ok, _ := afero.Exists(fsys, "/work/Bad Name"); ok {
		t.Error("target created before cancellation")
	}
}

func TestResolve_InteractiveToggles(t *testing.T) {
	in := baseInput("my-app")
	in.Interactive = true

	p := prompt.NewScripted("express", false, true, false, true)
	cfg, err := newResolver(p, afero.NewMemMapFs()).Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	want := Features{Lint: false, Format: true, Git: false, Env: true}
	if cfg.Features != want {
		t.Errorf("Features = %+v, want %+v", cfg.Features, want)
	}
	if cfg.Template != "express" {
		t.Errorf("Template = %q, want express", cfg.Template)
	}
	wantAsked := []string{
		"Select a template:",
		"Add ESLint for code linting?",
		"Add Prettier for code formatting?",
		"Initialize Git repository?",
		"Setup environment variables (.env file)?",
	}
	if !slices.Equal(p.Asked, wantAsked) {
		t.Errorf("Asked = %v, want %v", p.Asked, wantAsked)
	}
}

func TestResolve_GitUnavailable(t *testing.T) {
	in := baseInput("my-app")
	in.Interactive = true
	in.TemplateSet = true

	r := newResolver(prompt.NewScripted(true, true, true), afero.NewMemMapFs())
	r.GitAvailable = false
	cfg, err := r.Resolve(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Features.Git {
		t.Error("git enabled although unavailable")
	}
	if len(cfg.Warnings) != 1 || len(cfg.Hints) != 1 {
		t.Errorf("Warnings, Hints = %v, %v", cfg.Warnings, cfg.Hints)
	}

	p := r.Prompter.(*prompt.Scripted)
	if slices.Contains(p.Asked, "Initialize Git repository?") {
		t.Error("git question asked although git is unavailable")
	}
}

func TestFeaturesEnabled(t *testing.T) {
	e := Features{Lint: true, Env: true}.Enabled()
	if !e[manifest.FeatureLint] || e[manifest.FeatureFormat] || e[manifest.FeatureGit] || !e[manifest.FeatureEnv] {
		t.Errorf("Enabled() = %v", e)
	}
}

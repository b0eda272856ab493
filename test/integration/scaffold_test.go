//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/tsx-labs/create-tsx-app/internal/deps"
	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/probe"
	"github.com/tsx-labs/create-tsx-app/internal/scaffold"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
	"github.com/tsx-labs/create-tsx-app/internal/target"
	"github.com/tsx-labs/create-tsx-app/internal/vcs"
)

var allFeatures = manifest.Enabled{
	manifest.FeatureLint:   true,
	manifest.FeatureFormat: true,
	manifest.FeatureGit:    true,
	manifest.FeatureEnv:    true,
}

// generate prepares root and scaffolds template from src into it.
func generate(t *testing.T, src *scaffold.Source, template, root string, enabled manifest.Enabled) *scaffold.Result {
	t.Helper()
	fsys := afero.NewOsFs()
	if err := target.Prepare(fsys, root, target.ChoiceNone); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	res, err := scaffold.Generate(context.Background(), scaffold.Options{
		Source:      src,
		Template:    template,
		PackageName: filepath.Base(root),
		Features:    enabled,
		Fs:          fsys,
		Root:        root,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

// TestScaffoldAndCommit generates the embedded express template and commits
// it with the real git binary.
func TestScaffoldAndCommit(t *testing.T) {
	requireTool(t, "git")
	env := setupTestEnv(t)

	src, err := scaffold.OpenSource("")
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	generate(t, src, "express", env.ProjectDir, allFeatures)

	r := &shell.Exec{}
	if !probe.IsToolAvailable(context.Background(), r, "git") {
		t.Fatal("git on PATH but --version failed")
	}
	outcome := vcs.Init(context.Background(), r, env.ProjectDir)
	if !outcome.OK() {
		t.Fatalf("vcs.Init: %v", outcome.Err)
	}

	if got := git(t, env.ProjectDir, "log", "--format=%s"); got != vcs.CommitMessage {
		t.Errorf("commit subject = %q, want %q", got, vcs.CommitMessage)
	}
	tracked := strings.Split(git(t, env.ProjectDir, "ls-files"), "\n")
	for _, want := range []string{".gitignore", "package.json", "src/index.ts", "eslint.config.js"} {
		if !slices.Contains(tracked, want) {
			t.Errorf("%s not committed; tracked: %v", want, tracked)
		}
	}
	if slices.Contains(tracked, ".env") {
		t.Error(".env must be ignored by the generated .gitignore")
	}
}

// TestRemoveKeepsRepository re-scaffolds over an existing repository.
func TestRemoveKeepsRepository(t *testing.T) {
	requireTool(t, "git")
	env := setupTestEnv(t)

	src, err := scaffold.OpenSource("")
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	generate(t, src, "basic", env.ProjectDir, allFeatures)
	if outcome := vcs.Init(context.Background(), &shell.Exec{}, env.ProjectDir); !outcome.OK() {
		t.Fatalf("vcs.Init: %v", outcome.Err)
	}

	fsys := afero.NewOsFs()
	if err := target.Prepare(fsys, env.ProjectDir, target.ChoiceRemove); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "package.json"))
	if got := git(t, env.ProjectDir, "log", "--format=%s"); got != vcs.CommitMessage {
		t.Errorf("history lost after remove, log = %q", got)
	}
}

// TestCustomTemplatesDir scaffolds from a template tree on disk.
func TestCustomTemplatesDir(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplatesDir)

	src, err := scaffold.OpenSource(env.TemplatesDir)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if names := src.Manifest.TemplateNames(); !slices.Equal(names, []string{"cli"}) {
		t.Fatalf("templates = %v, want [cli]", names)
	}

	enabled := manifest.Enabled{manifest.FeatureLint: true}
	generate(t, src, "cli", env.ProjectDir, enabled)

	assertFileExists(t, filepath.Join(env.ProjectDir, "tsconfig.json"))
	assertFileExists(t, filepath.Join(env.ProjectDir, "src", "index.ts"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".gitignore"))
	assertFileContains(t, filepath.Join(env.ProjectDir, "README.md"), "# my-app")
	assertFileContains(t, filepath.Join(env.ProjectDir, "package.json"), `"name": "my-app"`)
	assertFileContains(t, filepath.Join(env.ProjectDir, "package.json"), `"lint": "eslint src"`)

	plan := deps.NewPlan(src.Manifest, "cli", enabled)
	if !slices.Equal(plan.Runtime, []string{"commander"}) {
		t.Errorf("runtime deps = %v", plan.Runtime)
	}
	if !slices.Equal(plan.Dev, []string{"typescript", "tsx", "eslint"}) {
		t.Errorf("dev deps = %v", plan.Dev)
	}
}

// TestTemplatesDirMissingCommon reports incomplete trees.
func TestTemplatesDirMissingCommon(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.TemplatesDir, "manifest.yaml"), "templates:\n  - name: cli\n")
	writeFile(t, filepath.Join(env.TemplatesDir, "cli", "package.json"), "{}\n")

	src, err := scaffold.OpenSource(env.TemplatesDir)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if err := src.Check("cli"); err == nil {
		t.Fatal("expected an error for a tree without common/")
	}
}

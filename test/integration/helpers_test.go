//go:build integration

package integration_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME, so no user config leaks in
	TemplatesDir string // an on-disk template tree
	ProjectDir   string // the scaffolding target
}

// setupTestEnv creates isolated temp directories and points HOME and the git
// identity at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		TemplatesDir: t.TempDir(),
		ProjectDir:   filepath.Join(t.TempDir(), "my-app"),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	return env
}

// requireTool skips the test when name is not on PATH.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not installed", name)
	}
}

// setupTemplates writes a minimal template tree with a single "cli"
// template into dir.
func setupTemplates(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "manifest.yaml"), `baseline:
  devDependencies: [typescript, tsx]
templates:
  - name: cli
    description: Command line tool
    dependencies: [commander]
assets:
  - source: _gitignore
    target: .gitignore
    when: [git]
features:
  lint:
    devDependencies: [eslint]
    scripts:
      lint: eslint src
`)
	writeFile(t, filepath.Join(dir, "common", "_gitignore"), "node_modules/\n")
	writeFile(t, filepath.Join(dir, "common", "tsconfig.json"), "{}\n")
	writeFile(t, filepath.Join(dir, "cli", "package.json"), `{
  "name": "placeholder",
  "bin": "src/index.ts",
  "scripts": {"start": "tsx src/index.ts"}
}
`)
	writeFile(t, filepath.Join(dir, "cli", "README.md"), "# {{PROJECT_NAME}}\n")
	writeFile(t, filepath.Join(dir, "cli", "src", "index.ts"), "console.log('hi')\n")
}

// git runs git in dir and returns its trimmed stdout.
func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := shell.Check(context.Background(), &shell.Exec{}, dir, "git", args...)
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(out.Stdout)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

package probe

import (
	"os"
	"strings"
)

// PackageManager identifies a supported package manager.
type PackageManager string

// Supported package managers.
const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// DefaultPackageManager is used when nothing can be detected.
const DefaultPackageManager = NPM

// detectionOrder is the order identifiers are matched within one source.
// pnpm precedes npm so that "pnpm" is never read as "npm".
var detectionOrder = []PackageManager{PNPM, Yarn, Bun, NPM}

// PackageManagers returns the supported package managers.
func PackageManagers() []PackageManager {
	return []PackageManager{NPM, PNPM, Yarn, Bun}
}

// ParsePackageManager returns the package manager named s, if supported.
func ParsePackageManager(s string) (PackageManager, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, pm := range PackageManagers() {
		if string(pm) == s {
			return pm, true
		}
	}
	return "", false
}

// Source names the signal that identified the package manager.
type Source string

// Detection sources, in priority order.
const (
	SourceExecPath  Source = "npm_execpath"
	SourceUserAgent Source = "npm_config_user_agent"
	SourceMarker    Source = "marker"
	SourceArgv      Source = "argv"
	SourceDefault   Source = "default"
	SourceOverride  Source = "override"
)

// Env is the slice of process state consulted by detection.
type Env struct {
	Getenv func(string) string
	Args   []string
}

// OSEnv returns an Env backed by the current process.
func OSEnv() Env {
	return Env{Getenv: os.Getenv, Args: os.Args}
}

func (e Env) get(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// markers maps tool-specific environment variables to the tool that sets them.
var markers = []struct {
	key string
	pm  PackageManager
}{
	{"PNPM_SCRIPT_SRC_DIR", PNPM},
	{"PNPM_HOME", PNPM},
	{"BUN_INSTALL", Bun},
	{"BUN_INSTALL_BIN", Bun},
	{"YARN_WRAP_OUTPUT", Yarn},
	{"YARN_IGNORE_PATH", Yarn},
	{"YARN_VERSION", Yarn},
}

// DetectPackageManager identifies the package manager that launched the
// process. It inspects, in order: the launcher executable path, the
// launcher's user agent, tool-specific markers, and argv. It falls back to
// npm when nothing matches.
func DetectPackageManager(env Env) (PackageManager, Source) {
	if pm, ok := match(env.get("npm_execpath")); ok {
		return pm, SourceExecPath
	}

	if ua := env.get("npm_config_user_agent"); ua != "" {
		// e.g. "pnpm/8.15.1 npm/? node/v20.11.0 darwin arm64"
		name, _, _ := strings.Cut(ua, "/")
		if pm, ok := ParsePackageManager(name); ok {
			return pm, SourceUserAgent
		}
		if pm, ok := match(ua); ok {
			return pm, SourceUserAgent
		}
	}

	for _, m := range markers {
		if env.get(m.key) != "" {
			return m.pm, SourceMarker
		}
	}

	if pm, ok := match(strings.Join(env.Args, " ")); ok {
		return pm, SourceArgv
	}

	return DefaultPackageManager, SourceDefault
}

func match(s string) (PackageManager, bool) {
	if s == "" {
		return "", false
	}
	s = strings.ToLower(s)
	for _, pm := range detectionOrder {
		if strings.Contains(s, string(pm)) {
			return pm, true
		}
	}
	return "", false
}

// Package branding holds the tool's identity: command name, config home,
// env prefix, release repository and the Node.js floor. The values come from
// the embedded branding.yaml.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

type identity struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GitHubRepo     string `yaml:"github_repo"`
	MinNodeVersion string `yaml:"min_node_version"`
}

var current = sync.OnceValue(func() identity {
	id := identity{
		CLIName:        "create-tsx-app",
		DisplayName:    "create-tsx-app",
		Description:    "Scaffold a TypeScript project that runs on tsx",
		HomeDir:        ".create-tsx-app",
		EnvPrefix:      "CREATE_TSX_APP",
		GitHubRepo:     "tsx-labs/create-tsx-app",
		MinNodeVersion: "18.0.0",
	}
	// Keys missing from the file keep the values above.
	_ = yaml.Unmarshal(rawBranding, &id)
	return id
})

func CLIName() string     { return current().CLIName }
func DisplayName() string { return current().DisplayName }
func Description() string { return current().Description }

// HomeDir is the config directory name under $HOME.
func HomeDir() string { return current().HomeDir }

// EnvPrefix prefixes every config environment variable.
func EnvPrefix() string { return current().EnvPrefix }

// GitHubRepo is the "owner/repo" releases are published from.
func GitHubRepo() string { return current().GitHubRepo }

// MinNodeVersion is the lowest Node.js version generated projects run on.
func MinNodeVersion() string { return current().MinNodeVersion }

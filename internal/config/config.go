package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tsx-labs/create-tsx-app/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplate         = "template"
	KeyPackageManager   = "package_manager"
	KeyTemplatesDir     = "templates_dir"
	KeyDefaultTargetDir = "default_target_dir"
	KeyMinNodeVersion   = "min_node_version"
	KeyInstall          = "install"
	KeyFeatureLint      = "features.lint"
	KeyFeatureFormat    = "features.format"
	KeyFeatureGit       = "features.git"
	KeyFeatureEnv       = "features.env"
)

// Settings is a snapshot of the effective user defaults.
type Settings struct {
	Template         string
	PackageManager   string
	TemplatesDir     string
	DefaultTargetDir string
	MinNodeVersion   string
	Install          bool
	Lint             bool
	Format           bool
	Git              bool
	Env              bool
}

// Dir returns the path to the config directory (~/.create-tsx-app/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplate, "basic")
	viper.SetDefault(KeyDefaultTargetDir, "tsx-app")
	viper.SetDefault(KeyMinNodeVersion, branding.MinNodeVersion())
	viper.SetDefault(KeyInstall, true)
	viper.SetDefault(KeyFeatureLint, true)
	viper.SetDefault(KeyFeatureFormat, true)
	viper.SetDefault(KeyFeatureGit, true)
	viper.SetDefault(KeyFeatureEnv, true)

	// Ignore error if config file doesn't exist.
	_ = viper.ReadInConfig()
}

// Current returns the effective settings. Load must be called first.
func Current() Settings {
	return Settings{
		Template:         viper.GetString(KeyTemplate),
		PackageManager:   viper.GetString(KeyPackageManager),
		TemplatesDir:     viper.GetString(KeyTemplatesDir),
		DefaultTargetDir: viper.GetString(KeyDefaultTargetDir),
		MinNodeVersion:   viper.GetString(KeyMinNodeVersion),
		Install:          viper.GetBool(KeyInstall),
		Lint:             viper.GetBool(KeyFeatureLint),
		Format:           viper.GetBool(KeyFeatureFormat),
		Git:              viper.GetBool(KeyFeatureGit),
		Env:              viper.GetBool(KeyFeatureEnv),
	}
}

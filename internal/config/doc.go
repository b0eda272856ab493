// Package config manages user-level defaults stored at
// ~/.create-tsx-app/config.yaml and CREATE_TSX_APP_* environment variables.
// Command-line flags always take precedence over these values.
package config

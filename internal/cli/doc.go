// Package cli defines the create-tsx-app command. The root command takes an
// optional target directory and feature flags, then runs the scaffolding
// pipeline; business logic lives in the internal packages it wires together.
package cli

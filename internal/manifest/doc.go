// Package manifest parses and validates the template manifest, the
// manifest.yaml file at the root of a template tree. It declares the known
// templates, the shared assets gated by feature toggles, and the
// dependencies and package.json scripts each feature contributes.
package manifest

// Package scaffold materializes a project from a template tree: it selects
// the entries a template and its feature toggles call for, copies them to
// the target with dotfile renames applied, rewrites package.json and fills
// in the README.
//
// The default template tree is embedded in the binary; a directory on disk
// with the same layout can replace it.
package scaffold

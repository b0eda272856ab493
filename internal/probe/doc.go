// Package probe inspects the environment once at startup: the Node.js version,
// the package manager that launched the CLI, and whether git and the package
// manager binary can be invoked. The result is an immutable Facts value that
// is passed explicitly to every stage that needs it.
package probe

// Package shell runs external programs (package managers, git, node) for the
// scaffolder. The Runner interface lets tests substitute scripted results.
package shell

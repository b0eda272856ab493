// Package resolve turns command-line input, user defaults and interactive
// answers into the immutable Config for one run.
package resolve

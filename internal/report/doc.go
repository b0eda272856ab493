// Package report renders user-facing progress: step and status lines, the
// outcome of best-effort steps, a spinner for long external commands and
// the closing summary.
package report

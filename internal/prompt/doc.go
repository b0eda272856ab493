// Package prompt asks the user yes/no, free-text and select questions.
// Cancellation (EOF, Ctrl-C, Esc, or a canceled context) is reported as
// ErrCancelled, distinct from any answer.
package prompt

package prompt

import (
	"context"
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("operation cancelled")

// Option is one choice of a Select prompt.
type Option struct {
	Value string
	Label string
}

// TextRequest describes a free-text question.
type TextRequest struct {
	Message string
	// Default is returned when the user submits an empty answer.
	Default string
	// Validate returns a non-empty message when the answer is unacceptable;
	// the question is asked again until it passes.
	Validate func(string) string
}

// Prompter asks questions.
type Prompter interface {
	Text(ctx context.Context, req TextRequest) (string, error)
	Confirm(ctx context.Context, message string, initial bool) (bool, error)
	Select(ctx context.Context, message string, options []Option, initial string) (string, error)
}

// ForTerminal returns the terminal UI prompter when both in and out are
// terminals and the line prompter otherwise.
func ForTerminal(in, out *os.File) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return NewTUI(in, out)
	}
	return NewLine(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// answer resolves an empty submission to the default value.
func answer(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// indexOf returns the index of value in options, or 0.
func indexOf(options []Option, value string) int {
	for i, o := range options {
		if o.Value == value {
			return i
		}
	}
	return 0
}

func label(o Option) string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

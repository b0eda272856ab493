package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external program.
type Runner interface {
	// Run executes name with args in dir. A process that starts and exits
	// non-zero yields an Output with ExitCode set and a nil error; the error
	// return is reserved for failures to start (binary not found, ctx canceled).
	Run(ctx context.Context, dir, name string, args ...string) (*Output, error)
}

// Output captures the result of a program execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the program exited with status 0.
func (o *Output) Succeeded() bool {
	return o != nil && o.ExitCode == 0
}

// Exec is the os/exec backed Runner.
type Exec struct {
	// Stdout and Stderr, when set, receive the child's output in addition to
	// the captured buffers.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if e.Stdout != nil {
		cmd.Stdout = io.MultiWriter(e.Stdout, &stdoutBuf)
	}
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.Stderr, &stderrBuf)
	}

	slog.Debug("running command", "cmd", CommandLine(name, args...), "dir", dir)
	err := cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			slog.Debug("command exited", "cmd", name, "code", output.ExitCode)
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", name, err)
	}

	return output, nil
}

// CommandLine renders name and args as a copy-pasteable shell command.
// Arguments containing whitespace or quotes are double-quoted.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// ExitError describes a program that ran but exited non-zero.
type ExitError struct {
	Command string
	Output  *Output
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Output.ExitCode)
	if detail := strings.TrimSpace(e.Output.Stderr); detail != "" {
		msg += ": " + firstLine(detail)
	}
	return msg
}

// Check runs name through r and converts a non-zero exit into an *ExitError.
func Check(ctx context.Context, r Runner, dir, name string, args ...string) (*Output, error) {
	out, err := r.Run(ctx, dir, name, args...)
	if err != nil {
		return out, err
	}
	if !out.Succeeded() {
		return out, &ExitError{Command: CommandLine(name, args...), Output: out}
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

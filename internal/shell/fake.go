package shell

import (
	"context"
	"fmt"
)

// Call records one invocation made through a Fake runner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the call as a command line, e.g. "git add -A".
func (c Call) Line() string {
	return CommandLine(c.Name, c.Args...)
}

// Fake is a scripted Runner for tests. Results are keyed by command line
// (name plus args) and fall back to keys holding the program name alone.
// Unscripted commands succeed with empty output.
type Fake struct {
	Results map[string]*Output
	Errors  map[string]error
	Calls   []Call
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) (*Output, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)

	for _, key := range []string{call.Line(), name} {
		if err, ok := f.Errors[key]; ok {
			return nil, fmt.Errorf("running %s: %w", name, err)
		}
		if out, ok := f.Results[key]; ok {
			return out, nil
		}
	}
	return &Output{}, nil
}

// Lines returns the command lines of all recorded calls.
func (f *Fake) Lines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line()
	}
	return lines
}

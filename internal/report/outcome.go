package report

// Outcome is the result of a best-effort step. The step succeeded iff Err
// is nil; on failure Remedy lists commands the user can run instead.
type Outcome struct {
	Step   string
	Err    error
	Remedy []string
}

// OK reports whether the step succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Skipped is an outcome for a step that did not run.
func Skipped(step string) Outcome {
	return Outcome{Step: step}
}

package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter writes progress output.
type Reporter struct {
	w   io.Writer
	tty bool

	cyan, green, yellow, red, bold, faint *color.Color
}

// New returns a Reporter writing to w. Colors and animation are enabled
// only when w is a terminal and NO_COLOR is unset.
func New(w io.Writer) *Reporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	r := &Reporter{
		w:      w,
		tty:    tty,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
	}
	useColor := tty && os.Getenv("NO_COLOR") == ""
	for _, c := range []*color.Color{r.cyan, r.green, r.yellow, r.red, r.bold, r.faint} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Reporter) line(symbol, msg string) {
	fmt.Fprintf(r.w, "%s  %s\n", symbol, msg)
}

// Intro opens the session.
func (r *Reporter) Intro(msg string) {
	fmt.Fprintf(r.w, "%s  %s\n│\n", r.cyan.Sprint("┌"), r.bold.Sprint(msg))
}

// Step announces a pipeline stage.
func (r *Reporter) Step(msg string) { r.line(r.green.Sprint("◇"), msg) }

// Info prints a neutral message.
func (r *Reporter) Info(msg string) { r.line(r.cyan.Sprint("●"), msg) }

// Warn prints a warning.
func (r *Reporter) Warn(msg string) { r.line(r.yellow.Sprint("▲"), msg) }

// Error prints an error.
func (r *Reporter) Error(msg string) { r.line(r.red.Sprint("■"), msg) }

// Success prints a completed step.
func (r *Reporter) Success(msg string) { r.line(r.green.Sprint("◆"), msg) }

// Outro closes the session.
func (r *Reporter) Outro(msg string) {
	fmt.Fprintf(r.w, "│\n%s  %s\n", r.cyan.Sprint("└"), msg)
}

// Cancel closes the session after a user abort.
func (r *Reporter) Cancel(msg string) {
	fmt.Fprintf(r.w, "%s  %s\n", r.red.Sprint("└"), msg)
}

// Outcome renders o: a success line, or a warning followed by the manual
// commands that replace the failed step.
func (r *Reporter) Outcome(o Outcome) {
	if o.OK() {
		r.Success(o.Step + " done.")
		return
	}
	r.Warn(fmt.Sprintf("%s failed: %v", o.Step, o.Err))
	if len(o.Remedy) == 0 {
		return
	}
	r.line(r.faint.Sprint("│"), "You can run it manually:")
	for _, cmd := range o.Remedy {
		r.line(r.faint.Sprint("│"), "  "+r.bold.Sprint(cmd))
	}
}

// Summary prints the closing message with the next steps for the project
// in targetDir, using pm to run scripts.
func (r *Reporter) Summary(targetDir, pm string, outcomes []Outcome) {
	var failed []string
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o.Step)
		}
	}

	var b strings.Builder
	if len(failed) == 0 {
		b.WriteString(r.green.Sprint("Project created successfully!"))
	} else {
		fmt.Fprintf(&b, "%s (%s needs attention)",
			r.yellow.Sprint("Project created"), strings.Join(failed, ", "))
	}
	b.WriteString("\n\n   Next steps:\n")
	n := 1
	if targetDir != "." {
		fmt.Fprintf(&b, "     %d. Navigate to your project: %s\n", n, r.bold.Sprint("cd "+quoteDir(targetDir)))
		n++
	}
	fmt.Fprintf(&b, "     %d. Start developing: %s\n", n, r.bold.Sprint(pm+" run dev"))
	fmt.Fprintf(&b, "     %d. Build your project: %s\n", n+1, r.bold.Sprint(pm+" run build"))
	r.Outro(b.String())
}

func quoteDir(dir string) string {
	if strings.ContainsAny(dir, " \t'\"") {
		return `"` + dir + `"`
	}
	return dir
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render("?")
	doneMark      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✔")
	cancelMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("✖")
	questionStyle = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// TUI is a Prompter that renders each question with Bubble Tea.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI returns a terminal UI prompter.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// outcome is implemented by every question model.
type outcome interface {
	tea.Model
	cancelled() bool
}

func (t *TUI) run(ctx context.Context, m outcome) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
		return nil, ErrCancelled
	}
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	if o, ok := final.(outcome); ok && o.cancelled() {
		return nil, ErrCancelled
	}
	return final, nil
}

// Text implements Prompter.
func (t *TUI) Text(ctx context.Context, req TextRequest) (string, error) {
	final, err := t.run(ctx, newTextModel(req))
	if err != nil {
		return "", err
	}
	return final.(*textModel).value, nil
}

// Confirm implements Prompter.
func (t *TUI) Confirm(ctx context.Context, message string, initial bool) (bool, error) {
	final, err := t.run(ctx, newConfirmModel(message, initial))
	if err != nil {
		return false, err
	}
	return final.(*confirmModel).value, nil
}

// Select implements Prompter.
func (t *TUI) Select(ctx context.Context, message string, options []Option, initial string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", message)
	}
	final, err := t.run(ctx, newSelectModel(message, options, initial))
	if err != nil {
		return "", err
	}
	m := final.(*selectModel)
	return m.options[m.cursor].Value, nil
}

func isAbort(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}

type textModel struct {
	req     TextRequest
	input   textinput.Model
	value   string
	problem string
	done    bool
	aborted bool
}

func newTextModel(req TextRequest) *textModel {
	in := textinput.New()
	in.Placeholder = req.Default
	in.Prompt = "› "
	in.Focus()
	return &textModel{req: req, input: in}
}

func (m *textModel) cancelled() bool { return m.aborted }

func (m *textModel) Init() tea.Cmd { return textinput.Blink }

func (m *textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isAbort(key):
			m.aborted = true
			return m, tea.Quit
		case key.Type == tea.KeyEnter:
			value := answer(strings.TrimSpace(m.input.Value()), m.req.Default)
			if m.req.Validate != nil {
				if problem := m.req.Validate(value); problem != "" {
					m.problem = problem
					return m, nil
				}
			}
			m.value, m.done = value, true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *textModel) View() string {
	switch {
	case m.aborted:
		return fmt.Sprintf("%s %s\n", cancelMark, questionStyle.Render(m.req.Message))
	case m.done:
		return fmt.Sprintf("%s %s %s\n", doneMark, questionStyle.Render(m.req.Message), mutedStyle.Render(m.value))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n  %s\n", questionMark, questionStyle.Render(m.req.Message), m.input.View())
	if m.problem != "" {
		fmt.Fprintf(&b, "  %s\n", errorStyle.Render(m.problem))
	}
	return b.String()
}

type confirmModel struct {
	message string
	value   bool
	done    bool
	aborted bool
}

func newConfirmModel(message string, initial bool) *confirmModel {
	return &confirmModel{message: message, value: initial}
}

func (m *confirmModel) cancelled() bool { return m.aborted }

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if isAbort(key) {
		m.aborted = true
		return m, tea.Quit
	}
	switch key.String() {
	case "y", "Y":
		m.value, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.value, m.done = false, true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	switch {
	case m.aborted:
		return fmt.Sprintf("%s %s\n", cancelMark, questionStyle.Render(m.message))
	case m.done:
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return fmt.Sprintf("%s %s %s\n", doneMark, questionStyle.Render(m.message), mutedStyle.Render(answer))
	}
	yes, no := mutedStyle.Render("Yes"), mutedStyle.Render("No")
	if m.value {
		yes = activeStyle.Render("Yes")
	} else {
		no = activeStyle.Render("No")
	}
	return fmt.Sprintf("%s %s\n  %s / %s\n", questionMark, questionStyle.Render(m.message), yes, no)
}

type selectModel struct {
	message string
	options []Option
	cursor  int
	done    bool
	aborted bool
}

func newSelectModel(message string, options []Option, initial string) *selectModel {
	return &selectModel{message: message, options: options, cursor: indexOf(options, initial)}
}

func (m *selectModel) cancelled() bool { return m.aborted }

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if isAbort(key) {
		m.aborted = true
		return m, tea.Quit
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *selectModel) View() string {
	switch {
	case m.aborted:
		return fmt.Sprintf("%s %s\n", cancelMark, questionStyle.Render(m.message))
	case m.done:
		return fmt.Sprintf("%s %s %s\n", doneMark, questionStyle.Render(m.message), mutedStyle.Render(label(m.options[m.cursor])))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", questionMark, questionStyle.Render(m.message))
	for i, o := range m.options {
		if i == m.cursor {
			fmt.Fprintf(&b, "  %s %s\n", activeStyle.Render("●"), label(o))
		} else {
			fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("○"), mutedStyle.Render(label(o)))
		}
	}
	return b.String()
}

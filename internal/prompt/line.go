package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Line is a line-oriented Prompter for pipes and dumb terminals. EOF on the
// input cancels.
type Line struct {
	r     io.Reader
	w     io.Writer
	start sync.Once
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewLine returns a Line prompter reading answers from r and writing
// questions to w. Nothing is read from r until the first question.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: r, w: w, lines: make(chan lineResult)}
}

// read feeds lines to the prompts so a blocked read never outlives a
// canceled context.
func (l *Line) read(reader *bufio.Reader) {
	for {
		text, err := reader.ReadString('\n')
		if err != nil && text == "" {
			l.lines <- lineResult{err: err}
			close(l.lines)
			return
		}
		l.lines <- lineResult{text: strings.TrimRight(text, "\r\n")}
	}
}

func (l *Line) next(ctx context.Context) (string, error) {
	l.start.Do(func() { go l.read(bufio.NewReader(l.r)) })
	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case res, ok := <-l.lines:
		if !ok {
			return "", ErrCancelled
		}
		if res.err != nil {
			if res.err == io.EOF {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("reading answer: %w", res.err)
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Text implements Prompter.
func (l *Line) Text(ctx context.Context, req TextRequest) (string, error) {
	for {
		if req.Default != "" {
			fmt.Fprintf(l.w, "? %s (%s) ", req.Message, req.Default)
		} else {
			fmt.Fprintf(l.w, "? %s ", req.Message)
		}

		line, err := l.next(ctx)
		if err != nil {
			return "", err
		}
		value := answer(line, req.Default)

		if req.Validate != nil {
			if msg := req.Validate(value); msg != "" {
				fmt.Fprintf(l.w, "  %s\n", msg)
				continue
			}
		}
		return value, nil
	}
}

// Confirm implements Prompter.
func (l *Line) Confirm(ctx context.Context, message string, initial bool) (bool, error) {
	hint := "y/N"
	if initial {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.w, "? %s (%s) ", message, hint)

		line, err := l.next(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return initial, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(l.w, "  Please answer y or n.")
	}
}

// Select implements Prompter with a numbered menu.
func (l *Line) Select(ctx context.Context, message string, options []Option, initial string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", message)
	}
	def := indexOf(options, initial)

	for {
		fmt.Fprintf(l.w, "? %s\n", message)
		for i, o := range options {
			fmt.Fprintf(l.w, "  %d) %s\n", i+1, label(o))
		}
		fmt.Fprintf(l.w, "Enter number [1-%d] (%d): ", len(options), def+1)

		line, err := l.next(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			return options[def].Value, nil
		}
		num, convErr := strconv.Atoi(line)
		if convErr == nil && num >= 1 && num <= len(options) {
			return options[num-1].Value, nil
		}
		fmt.Fprintf(l.w, "  Invalid selection %q: choose 1-%d.\n", line, len(options))
	}
}

package prompt

import (
	"context"
	"fmt"
)

// Scripted is a Prompter that replays canned answers in order. Each answer
// is a string (Text and Select), a bool (Confirm) or an error that is
// returned as is. It records every question it was asked.
type Scripted struct {
	Answers []any

	// Asked lists the messages of the questions in the order they came.
	Asked []string
	// Rejected lists validation messages produced by Text answers.
	Rejected []string
}

// NewScripted returns a Scripted prompter with the given answers.
func NewScripted(answers ...any) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) pop(message string) (any, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return nil, fmt.Errorf("no scripted answer for %q", message)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

// Text implements Prompter. A rejected answer consumes the next one, the
// way a user would retype it.
func (s *Scripted) Text(ctx context.Context, req TextRequest) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", ErrCancelled
		}
		a, err := s.pop(req.Message)
		if err != nil {
			return "", err
		}
		str, ok := a.(string)
		if !ok {
			return "", fmt.Errorf("scripted answer for %q is %T, want string", req.Message, a)
		}
		value := answer(str, req.Default)
		if req.Validate != nil {
			if msg := req.Validate(value); msg != "" {
				s.Rejected = append(s.Rejected, msg)
				continue
			}
		}
		return value, nil
	}
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(ctx context.Context, message string, _ bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrCancelled
	}
	a, err := s.pop(message)
	if err != nil {
		return false, err
	}
	b, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("scripted answer for %q is %T, want bool", message, a)
	}
	return b, nil
}

// Select implements Prompter. An empty string answer picks initial.
func (s *Scripted) Select(ctx context.Context, message string, options []Option, initial string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrCancelled
	}
	a, err := s.pop(message)
	if err != nil {
		return "", err
	}
	str, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("scripted answer for %q is %T, want string", message, a)
	}
	if str == "" {
		str = initial
	}
	for _, o := range options {
		if o.Value == str {
			return str, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not an option of %q", str, message)
}

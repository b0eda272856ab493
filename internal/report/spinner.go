package report

import (
	"fmt"
	"sync"
	"time"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner animates a single status line while a long command runs. When the
// reporter is not attached to a terminal it prints the message once.
type Spinner struct {
	r   *Reporter
	msg string

	mu     sync.Mutex
	active bool
	frame  int
	stop   chan struct{}
	done   chan struct{}
}

// Spinner returns a stopped spinner showing msg.
func (r *Reporter) Spinner(msg string) *Spinner {
	return &Spinner{r: r, msg: msg}
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	if !s.r.tty {
		fmt.Fprintf(s.r.w, "%s  %s\n", s.r.cyan.Sprint("◒"), s.msg)
		close(s.done)
		return
	}
	go s.loop()
}

// Stop ends the animation and prints final as a success or error line.
func (s *Spinner) Stop(final string, ok bool) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stop)
	s.mu.Unlock()
	<-s.done

	if s.r.tty {
		fmt.Fprint(s.r.w, "\r\033[K")
	}
	if final == "" {
		return
	}
	if ok {
		s.r.Success(final)
	} else {
		s.r.Error(final)
	}
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frame]
	s.frame = (s.frame + 1) % len(spinnerFrames)
	fmt.Fprintf(s.r.w, "\r%s  %s", s.r.cyan.Sprint(string(frame)), s.msg)
}

package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusSpinner shows that a blocking call is in flight. On a terminal it
// animates in place; on any other writer each message is printed once as a
// plain line so CI logs stay readable.
type StatusSpinner struct {
	out     io.Writer
	animate bool

	mu       sync.Mutex
	frameIdx int
	message  string
	started  time.Time
	running  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewStatusSpinner creates a StatusSpinner writing to stderr.
func NewStatusSpinner() *StatusSpinner {
	return NewStatusSpinnerWithWriter(os.Stderr)
}

// NewStatusSpinnerWithWriter creates a StatusSpinner writing to out.
func NewStatusSpinnerWithWriter(out io.Writer) *StatusSpinner {
	return &StatusSpinner{out: out, animate: isTerminalWriter(out)}
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsRunning reports whether the spinner is active.
func (s *StatusSpinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start shows message. Calling Start on a running spinner does nothing.
func (s *StatusSpinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.message = message
	s.started = time.Now()

	if !s.animate {
		fmt.Fprintf(s.out, "%s...\n", message)
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *StatusSpinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.renderLocked()
			s.mu.Unlock()
		}
	}
}

// Update replaces the message of a running spinner.
func (s *StatusSpinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || message == s.message {
		return
	}
	s.message = message
	if !s.animate {
		fmt.Fprintf(s.out, "%s...\n", message)
		return
	}
	s.renderLocked()
}

// Stop halts the spinner and returns how long it ran. The animated line is
// cleared.
func (s *StatusSpinner) Stop() time.Duration {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return 0
	}
	s.running = false
	elapsed := time.Since(s.started)
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if s.animate {
		close(stop)
		<-done
		fmt.Fprintf(s.out, "\r%80s\r", "")
	}
	return elapsed
}

func (s *StatusSpinner) renderLocked() {
	fmt.Fprintf(s.out, "\r%s %s (%s)          ", statusSpinnerFrames[s.frameIdx], s.message,
		time.Since(s.started).Truncate(time.Second))
	s.frameIdx = (s.frameIdx + 1) % len(statusSpinnerFrames)
}

// Package progress shows a spinner on stderr while the notifier waits for
// the user to react to a notification.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

const (
	// spinnerCharSet is the index into spinner.CharSets (braille dots)
	spinnerCharSet = 14
	refreshRate    = 100 * time.Millisecond
)

// Waiter animates a message until stopped. It is a no-op unless its
// writer is a terminal, so redirected output stays clean.
type Waiter struct {
	mu       sync.Mutex
	spinner  *spinner.Spinner
	enabled  bool
	message  string
	deadline time.Time
}

// NewWaiter creates a waiter writing to stderr. A zero deadline shows no
// countdown.
func NewWaiter(message string, deadline time.Time) *Waiter {
	return newWaiter(os.Stderr, IsTerminal(os.Stderr), message, deadline)
}

func newWaiter(w io.Writer, enabled bool, message string, deadline time.Time) *Waiter {
	wt := &Waiter{enabled: enabled, message: message, deadline: deadline}
	if !enabled {
		return wt
	}
	wt.spinner = spinner.New(spinner.CharSets[spinnerCharSet], refreshRate, spinner.WithWriter(w))
	wt.spinner.Suffix = suffix(message, deadline, time.Now())
	wt.spinner.PreUpdate = func(s *spinner.Spinner) {
		s.Suffix = suffix(wt.message, wt.deadline, time.Now())
	}
	return wt
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether the waiter draws anything.
func (w *Waiter) Enabled() bool {
	return w.enabled
}

// Start begins the animation.
func (w *Waiter) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.spinner != nil {
		w.spinner.Start()
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (w *Waiter) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.spinner != nil {
		w.spinner.Stop()
	}
}

// suffix renders the text next to the spinner.
func suffix(message string, deadline, now time.Time) string {
	if deadline.IsZero() {
		return " " + message
	}
	left := deadline.Sub(now).Round(time.Second)
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf(" %s (%s left)", message, left)
}

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jongio/toastnotifier/cliout"
	"github.com/jongio/toastnotifier/notify"
	"github.com/jongio/toastnotifier/toast"
)

// CaptureOutput captures stdout during function execution, including
// everything written through cliout. Colors are disabled while capturing.
// The original writers are always restored, even if the function returns
// an error.
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	prevOut := cliout.SetOutput(w)
	cliout.NoColor()

	// Buffered to avoid a goroutine leak
	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout
	cliout.SetOutput(prevOut)

	output := <-outCh
	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}
	return output
}

// Submission is one document received by a ScriptedDelivery.
type Submission struct {
	AppID string
	XML   string
}

// ScriptedDelivery is a notify.Delivery that reports Outcome for every
// submitted document, or fails submission with SubmitErr. An Outcome of
// kind OutcomeUnknown or OutcomeCancelled reports nothing, leaving the
// caller to time out.
type ScriptedDelivery struct {
	Outcome   notify.Outcome
	SubmitErr error

	mu          sync.Mutex
	submissions []Submission
}

// Submit implements notify.Delivery.
func (d *ScriptedDelivery) Submit(_ context.Context, appID string, doc *toast.Document, h notify.Handlers) error {
	if d.SubmitErr != nil {
		return d.SubmitErr
	}
	d.mu.Lock()
	d.submissions = append(d.submissions, Submission{AppID: appID, XML: doc.String()})
	d.mu.Unlock()

	switch d.Outcome.Kind {
	case notify.OutcomeActivated:
		go h.OnActivated()
	case notify.OutcomeDismissed:
		go h.OnDismissed(d.Outcome.Reason)
	case notify.OutcomeFailed:
		go h.OnFailed(d.Outcome.Err)
	}
	return nil
}

// Submissions returns the documents received so far.
func (d *ScriptedDelivery) Submissions() []Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Submission(nil), d.submissions...)
}

// WriteFile writes content to name inside a new temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

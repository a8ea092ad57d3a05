package notify

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jongio/toastnotifier/logutil"
	"github.com/jongio/toastnotifier/toast"
)

var log = logutil.NewLogger("notify")

// Session shows one document and waits for its outcome. It is single-use:
// a second ShowAndWait fails with ErrSessionUsed.
type Session struct {
	delivery Delivery
	started  atomic.Bool

	// once guards the only write of outcome; done is closed by that write.
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

// NewSession creates a session that displays through d.
func NewSession(d Delivery) *Session {
	return &Session{
		delivery: d,
		done:     make(chan struct{}),
	}
}

// ShowAndWait submits doc under appID and blocks until the delivery reports
// an outcome or ctx is done.
//
// A submission error is returned immediately. When ctx ends first the
// outcome is OutcomeCancelled, which is not an error; an outcome recorded
// before that is returned instead. A failed outcome is returned as an error
// wrapping ErrDelivery when failOnError is set.
func (s *Session) ShowAndWait(ctx context.Context, appID string, doc *toast.Document, failOnError bool) (Outcome, error) {
	if !s.started.CompareAndSwap(false, true) {
		return Outcome{}, ErrSessionUsed
	}
	if doc == nil {
		return Outcome{}, fmt.Errorf("%w: no document", toast.ErrInvalidDocument)
	}

	slog := log.WithOperation("show").WithFields("app", appID)
	start := time.Now()

	handlers := Handlers{
		OnActivated: func() { s.record(Activated()) },
		OnDismissed: func(reason DismissalReason) { s.record(Dismissed(reason)) },
		OnFailed:    func(err error) { s.record(Failed(err)) },
	}

	slog.Debug("submitting notification", "template", doc.TemplateName())
	if err := s.delivery.Submit(ctx, appID, doc, handlers); err != nil {
		submitErrors.Inc()
		slog.Debug("submission failed", "error", err)
		return Outcome{}, fmt.Errorf("failed to submit notification: %w", deliveryError(err))
	}

	outcome := s.wait(ctx)
	recordOutcome(outcome, time.Since(start))
	slog.Debug("display session finished", "outcome", outcome.String())

	if outcome.Kind == OutcomeFailed && failOnError {
		if outcome.Err != nil {
			return outcome, deliveryError(outcome.Err)
		}
		return outcome, ErrNotificationFailed
	}
	return outcome, nil
}

// Result is what ShowAsync delivers.
type Result struct {
	Outcome Outcome
	Err     error
}

// ShowAsync runs ShowAndWait in a goroutine. The returned channel receives
// exactly one Result.
func (s *Session) ShowAsync(ctx context.Context, appID string, doc *toast.Document, failOnError bool) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		outcome, err := s.ShowAndWait(ctx, appID, doc, failOnError)
		ch <- Result{Outcome: outcome, Err: err}
	}()
	return ch
}

// record stores o if no outcome has been stored yet and releases the waiter.
func (s *Session) record(o Outcome) {
	recorded := false
	s.once.Do(func() {
		s.outcome = o
		recorded = true
		close(s.done)
	})
	if !recorded {
		log.Debug("ignoring late notification event", "event", o.Kind.String())
	}
}

func (s *Session) wait(ctx context.Context) Outcome {
	select {
	case <-s.done:
		return s.outcome
	case <-ctx.Done():
		// Both may be ready; a recorded outcome wins over cancellation.
		select {
		case <-s.done:
			return s.outcome
		default:
		}
		log.Debug("display session cancelled", "cause", context.Cause(ctx))
		return Cancelled()
	}
}

// Package notify displays toast documents and waits for their outcome.
//
// A platform Delivery shows a document and reports what happened through
// asynchronous callbacks. Session turns those callbacks into a single
// blocking call:
//
//	session := notify.NewSession(notify.New(notify.DefaultConfig()))
//	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
//	defer cancel()
//	outcome, err := session.ShowAndWait(ctx, appID, doc, true)
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jongio/toastnotifier/toast"
)

// Handlers receive the terminal events of one submitted document.
// A delivery calls at most one of them per submission, but callers must
// tolerate repeated or concurrent calls.
type Handlers struct {
	OnActivated func()
	OnDismissed func(DismissalReason)
	OnFailed    func(error)
}

func (h Handlers) activated() {
	if h.OnActivated != nil {
		h.OnActivated()
	}
}

func (h Handlers) dismissed(reason DismissalReason) {
	if h.OnDismissed != nil {
		h.OnDismissed(reason)
	}
}

func (h Handlers) failed(err error) {
	if h.OnFailed != nil {
		h.OnFailed(err)
	}
}

// Delivery is a platform notification service.
type Delivery interface {
	// Submit shows doc under appID without waiting for it to be closed.
	// An error means nothing was shown and no handler will be called.
	// Otherwise the delivery eventually calls one handler, or none if the
	// platform never reports back. Cancelling ctx withdraws interest in the
	// outcome.
	Submit(ctx context.Context, appID string, doc *toast.Document, h Handlers) error
}

// DeliveryFunc adapts a function to the Delivery interface.
type DeliveryFunc func(ctx context.Context, appID string, doc *toast.Document, h Handlers) error

// Submit calls f.
func (f DeliveryFunc) Submit(ctx context.Context, appID string, doc *toast.Document, h Handlers) error {
	return f(ctx, appID, doc, h)
}

// Config contains notification system configuration.
type Config struct {
	// AppName is used as a title by deliveries that need one
	AppName string

	// AppIDPrefix is prepended to application ids, see ApplicationID
	AppIDPrefix string

	// SubmitInterval is the minimum spacing between submissions; 0 disables limiting
	SubmitInterval time.Duration

	// SubmitBurst is the number of submissions allowed without spacing
	SubmitBurst int

	// BreakerFailures is the number of consecutive delivery failures after
	// which submissions are refused; 0 disables the breaker
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open
	BreakerTimeout time.Duration

	// NormalDisplay and LongDisplay are the on-screen times of deliveries
	// that cannot observe dismissal themselves
	NormalDisplay time.Duration
	LongDisplay   time.Duration

	// Images makes remote images available to deliveries that can only
	// show local files; nil leaves remote images out
	Images ImageFetcher
}

// ImageFetcher returns the path of a local copy of a remote image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName:         "Toast Notifier",
		AppIDPrefix:     "toastnotifier",
		SubmitInterval:  250 * time.Millisecond,
		SubmitBurst:     3,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
		NormalDisplay:   7 * time.Second,
		LongDisplay:     25 * time.Second,
	}
}

// ApplicationID returns the id a notification is shown under:
// "<AppIDPrefix>.<id>", or id alone without a prefix.
func (c Config) ApplicationID(id string) string {
	id = strings.TrimSpace(id)
	if c.AppIDPrefix == "" {
		return id
	}
	return c.AppIDPrefix + "." + id
}

// New creates the platform delivery guarded by the configured rate limit
// and circuit breaker.
func New(config Config) Delivery {
	return NewGuard(newPlatformDelivery(config), config)
}

var (
	// ErrDelivery is the class of every submission or display failure.
	ErrDelivery = errors.New("delivery error")

	ErrNotAvailable       = fmt.Errorf("%w: OS notifications not available", ErrDelivery)
	ErrNotificationFailed = fmt.Errorf("%w: notification failed for unknown reason", ErrDelivery)

	// ErrSessionUsed is returned when a Session is shown a second time.
	ErrSessionUsed = fmt.Errorf("%w: display session has already been used", toast.ErrState)
)

func deliveryError(err error) error {
	if errors.Is(err, ErrDelivery) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDelivery, err)
}

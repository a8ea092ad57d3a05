package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/jongio/toastnotifier/toast"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Guard wraps a Delivery with a submission rate limit and a circuit breaker.
// The breaker counts failed submissions and failed outcomes; activations
// and dismissals count as successes.
type Guard struct {
	next    Delivery
	limiter *rate.Limiter
	breaker *gobreaker.TwoStepCircuitBreaker
}

// NewGuard wraps next according to config. Limits that are zero in config
// are disabled.
func NewGuard(next Delivery, config Config) *Guard {
	g := &Guard{next: next}

	if config.SubmitInterval > 0 {
		burst := config.SubmitBurst
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Every(config.SubmitInterval), burst)
	}

	if config.BreakerFailures > 0 {
		threshold := config.BreakerFailures
		g.breaker = gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
			Name:        "toast-delivery",
			MaxRequests: 1,
			Timeout:     config.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Debug("delivery breaker state changed", "from", from.String(), "to", to.String())
				recordBreakerState(to)
			},
		})
	}
	return g
}

// Submit implements Delivery.
func (g *Guard) Submit(ctx context.Context, appID string, doc *toast.Document, h Handlers) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: waiting for a submission slot: %w", ErrDelivery, err)
		}
	}
	if g.breaker == nil {
		return g.next.Submit(ctx, appID, doc, h)
	}

	done, err := g.breaker.Allow()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	var once sync.Once
	report := func(success bool) {
		once.Do(func() { done(success) })
	}

	err = g.next.Submit(ctx, appID, doc, Handlers{
		OnActivated: func() {
			report(true)
			h.activated()
		},
		OnDismissed: func(reason DismissalReason) {
			report(true)
			h.dismissed(reason)
		},
		OnFailed: func(err error) {
			report(false)
			h.failed(err)
		},
	})
	if err != nil {
		report(false)
		return err
	}
	// A caller that stops waiting is neither a success nor a failure of
	// the delivery; release the request so a half-open breaker can probe again.
	context.AfterFunc(ctx, func() { report(true) })
	return nil
}

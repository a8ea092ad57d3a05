package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jongio/toastnotifier/toast"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_PassesHandlersThrough(t *testing.T) {
	g := NewGuard(fakeDelivery(func(h Handlers) { h.dismissed(ReasonUserCanceled) }), DefaultConfig())

	var got DismissalReason
	err := g.Submit(context.Background(), "app", testDocument(t), Handlers{
		OnDismissed: func(r DismissalReason) { got = r },
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonUserCanceled, got)
}

func TestGuard_RateLimit(t *testing.T) {
	config := Config{SubmitInterval: time.Hour, SubmitBurst: 1}
	g := NewGuard(fakeDelivery(nil), config)

	require.NoError(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Submit(ctx, "app", testDocument(t), Handlers{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestGuard_BreakerOpensOnSubmitErrors(t *testing.T) {
	calls := 0
	d := DeliveryFunc(func(context.Context, string, *toast.Document, Handlers) error {
		calls++
		return errors.New("platform refused")
	})
	g := NewGuard(d, Config{BreakerFailures: 2, BreakerTimeout: time.Hour})

	for range 2 {
		require.Error(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))
	}

	err := g.Submit(context.Background(), "app", testDocument(t), Handlers{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Equal(t, 2, calls)
}

func TestGuard_BreakerCountsFailedOutcomes(t *testing.T) {
	g := NewGuard(fakeDelivery(func(h Handlers) { h.failed(errors.New("boom")) }),
		Config{BreakerFailures: 2, BreakerTimeout: time.Hour})

	failures := 0
	h := Handlers{OnFailed: func(error) { failures++ }}
	for range 2 {
		require.NoError(t, g.Submit(context.Background(), "app", testDocument(t), h))
	}
	assert.Equal(t, 2, failures)

	err := g.Submit(context.Background(), "app", testDocument(t), h)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestGuard_SuccessResetsFailures(t *testing.T) {
	fail := true
	g := NewGuard(fakeDelivery(func(h Handlers) {
		if fail {
			h.failed(nil)
		} else {
			h.activated()
		}
	}), Config{BreakerFailures: 2, BreakerTimeout: time.Hour})

	require.NoError(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))
	fail = false
	require.NoError(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))
	fail = true
	require.NoError(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))
	assert.NoError(t, g.Submit(context.Background(), "app", testDocument(t), Handlers{}))
}

func TestGuard_Disabled(t *testing.T) {
	g := NewGuard(DeliveryFunc(func(context.Context, string, *toast.Document, Handlers) error {
		return errors.New("platform refused")
	}), Config{})

	for range 10 {
		err := g.Submit(context.Background(), "app", testDocument(t), Handlers{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
}

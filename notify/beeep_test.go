package notify

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jongio/toastnotifier/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentNotification struct {
	title, message string
	icon           any
}

func newTestBeeep(t *testing.T, notifyErr error) (*BeeepDelivery, *[]sentNotification, *int) {
	t.Helper()
	config := DefaultConfig()
	config.NormalDisplay = 10 * time.Millisecond
	config.LongDisplay = 20 * time.Millisecond

	var sent []sentNotification
	beeps := 0
	d := NewBeeepDelivery(config)
	d.notify = func(title, message string, icon any) error {
		sent = append(sent, sentNotification{title: title, message: message, icon: icon})
		return notifyErr
	}
	d.beep = func(float64, int) error {
		beeps++
		return nil
	}
	return d, &sent, &beeps
}

func buildDocument(t *testing.T, r toast.Request) *toast.Document {
	t.Helper()
	b, err := toast.NewBuilderFromRequest(r)
	require.NoError(t, err)
	return b.Build()
}

func TestBeeepDelivery_Submit(t *testing.T) {
	d, sent, beeps := newTestBeeep(t, nil)
	doc := buildDocument(t, toast.Request{
		Lines:    []string{"Build finished", "12 passed", "0 failed"},
		Template: "ToastText04",
	})

	outcome, err := NewSession(d).ShowAndWait(context.Background(), "app", doc, true)
	require.NoError(t, err)
	assert.Equal(t, Dismissed(ReasonTimedOut), outcome)

	require.Len(t, *sent, 1)
	assert.Equal(t, "Build finished", (*sent)[0].title)
	assert.Equal(t, "12 passed\n0 failed", (*sent)[0].message)
	assert.Equal(t, "", (*sent)[0].icon)
	assert.Equal(t, 1, *beeps)
}

func TestBeeepDelivery_SilentDoesNotBeep(t *testing.T) {
	d, _, beeps := newTestBeeep(t, nil)
	doc := buildDocument(t, toast.Request{Lines: []string{"Quiet"}, Sound: "off"})

	_, err := NewSession(d).ShowAndWait(context.Background(), "app", doc, true)
	require.NoError(t, err)
	assert.Zero(t, *beeps)
}

func TestBeeepDelivery_NotifyError(t *testing.T) {
	notifyErr := errors.New("dbus unavailable")
	d, _, _ := newTestBeeep(t, notifyErr)
	doc := buildDocument(t, toast.Request{Lines: []string{"Hello"}})

	_, err := NewSession(d).ShowAndWait(context.Background(), "app", doc, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, notifyErr)
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestBeeepDelivery_CancelBeforeTimeout(t *testing.T) {
	d, _, _ := newTestBeeep(t, nil)
	d.config.NormalDisplay = time.Hour
	doc := buildDocument(t, toast.Request{Lines: []string{"Hello"}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	outcome, err := NewSession(d).ShowAndWait(ctx, "app", doc, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome.Kind)
}

func TestBeeepDelivery_CancelledContext(t *testing.T) {
	d, sent, _ := newTestBeeep(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Submit(ctx, "app", buildDocument(t, toast.Request{Lines: []string{"Hello"}}), Handlers{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *sent)
}

func TestNotificationText(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantTitle   string
		wantMessage string
	}{
		{name: "single", lines: []string{"Hello"}, wantTitle: "Hello"},
		{name: "two", lines: []string{"Hello", "World"}, wantTitle: "Hello", wantMessage: "World"},
		{name: "leading empty", lines: []string{"", "World"}, wantTitle: "World"},
		{name: "all empty", lines: []string{"", ""}, wantTitle: "Toast Notifier"},
		{name: "none", lines: nil, wantTitle: "Toast Notifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message := notificationText(tt.lines, "Toast Notifier")
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

type fakeImages struct {
	path string
	err  error
	urls []string
}

func (f *fakeImages) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.path, f.err
}

func TestBeeepDelivery_RemoteImage(t *testing.T) {
	doc := buildDocument(t, toast.Request{
		Lines: []string{"Deployed"},
		Image: "https://example.com/logo.png",
	})

	t.Run("fetched", func(t *testing.T) {
		d, sent, _ := newTestBeeep(t, nil)
		images := &fakeImages{path: "/cache/logo.png"}
		d.config.Images = images

		require.NoError(t, d.Submit(context.Background(), "app", doc, Handlers{}))
		require.Len(t, *sent, 1)
		assert.Equal(t, "/cache/logo.png", (*sent)[0].icon)
		assert.Equal(t, []string{"https://example.com/logo.png"}, images.urls)
	})

	t.Run("fetch error leaves the icon out", func(t *testing.T) {
		d, sent, _ := newTestBeeep(t, nil)
		d.config.Images = &fakeImages{err: errors.New("offline")}

		require.NoError(t, d.Submit(context.Background(), "app", doc, Handlers{}))
		require.Len(t, *sent, 1)
		assert.Equal(t, "", (*sent)[0].icon)
	})

	t.Run("no fetcher", func(t *testing.T) {
		d, sent, _ := newTestBeeep(t, nil)

		require.NoError(t, d.Submit(context.Background(), "app", doc, Handlers{}))
		require.Len(t, *sent, 1)
		assert.Equal(t, "", (*sent)[0].icon)
	})

	t.Run("package images are not fetched", func(t *testing.T) {
		d, _, _ := newTestBeeep(t, nil)
		images := &fakeImages{path: "/cache/x.png"}
		d.config.Images = images

		assert.Equal(t, "", d.iconPath(context.Background(), "ms-appx:///Assets/logo.png"))
		assert.Empty(t, images.urls)
	})
}

func TestLocalImagePath(t *testing.T) {
	assert.Equal(t, "", localImagePath(""))
	assert.Equal(t, "", localImagePath("https://example.com/a.png"))
	assert.Equal(t, filepath.FromSlash("/home/me/a.png"), localImagePath("file:///home/me/a.png"))
	if runtime.GOOS == "windows" {
		assert.Equal(t, `C:\img\a.png`, localImagePath("file:///C:/img/a.png"))
	} else {
		assert.Equal(t, "C:/img/a.png", localImagePath("file:///C:/img/a.png"))
	}
}

package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/jongio/toastnotifier/toast"
	"github.com/jongio/toastnotifier/urlutil"
)

// BeeepDelivery shows notifications with the cross-platform beeep library.
// beeep cannot observe what happens to a notification, so every shown
// notification is reported dismissed with ReasonTimedOut once its display
// duration has passed.
type BeeepDelivery struct {
	config Config
	notify func(title, message string, icon any) error
	beep   func(freq float64, duration int) error
}

// NewBeeepDelivery creates a beeep-based delivery.
func NewBeeepDelivery(config Config) *BeeepDelivery {
	return &BeeepDelivery{
		config: config,
		notify: beeep.Notify,
		beep:   beeep.Beep,
	}
}

// Submit implements Delivery.
func (d *BeeepDelivery) Submit(ctx context.Context, appID string, doc *toast.Document, h Handlers) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	title, message := notificationText(doc.Lines(), d.config.AppName)
	icon := d.iconPath(ctx, doc.ImageSource())
	if err := d.notify(title, message, icon); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	log.Debug("notification sent", "app", appID, "title", title)

	if audio := doc.Audio(); !audio.Silent && d.beep != nil {
		if err := d.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			log.Debug("beep failed", "error", err)
		}
	}

	display := d.config.NormalDisplay
	if doc.LongDuration() {
		display = d.config.LongDisplay
	}
	go func() {
		timer := time.NewTimer(display)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			h.dismissed(ReasonTimedOut)
		}
	}()
	return nil
}

// notificationText uses the first non-empty line as the title and joins the
// rest into the message. fallback is the title when every line is empty.
func notificationText(lines []string, fallback string) (title, message string) {
	var rest []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		if title == "" {
			title = line
			continue
		}
		rest = append(rest, line)
	}
	if title == "" {
		title = fallback
	}
	return title, strings.Join(rest, "\n")
}

// iconPath returns a local file showing src, fetching remote images through
// the configured ImageFetcher. Images that cannot be made local are left out.
func (d *BeeepDelivery) iconPath(ctx context.Context, src string) string {
	if path := localImagePath(src); path != "" || src == "" {
		return path
	}
	if d.config.Images == nil || !urlutil.IsRemote(src) {
		return ""
	}
	path, err := d.config.Images.Fetch(ctx, src)
	if err != nil {
		log.Warn("failed to fetch notification image", "url", src, "error", err)
		return ""
	}
	return path
}

// localImagePath returns the file system path of a file:/// image source,
// or "" for remote or missing images.
func localImagePath(src string) string {
	if !strings.HasPrefix(src, "file:///") {
		return ""
	}
	path := strings.TrimPrefix(src, "file://")
	// file:///C:/dir/a.png leaves /C:/dir/a.png.
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

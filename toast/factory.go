package toast

import (
	"fmt"
	"strings"
)

// Request is the declarative description of a notification.
type Request struct {
	// Lines are the text lines, in display order.
	Lines []string
	// Image is a local path or URL; empty for no image.
	Image string
	// Template selects a template by name; empty infers it from Lines and Image.
	Template string
	// LongDuration keeps the notification on screen longer.
	LongDuration bool
	// Sound is a sound specification, see ParseSound; empty keeps the default.
	Sound string
	// LoopSound sets loop="true" on the selected sound. It only applies
	// together with a non-silent Sound.
	LoopSound bool
	// Launch is the activation argument, typically a URL; empty for none.
	Launch string
}

// NeedsImage reports whether the request carries an image reference.
func (r Request) NeedsImage() bool {
	return r.Image != ""
}

// NewBuilderFromRequest selects the template for r and fills a builder with
// all of r. The builder is returned unbuilt so callers may adjust it further.
func NewBuilderFromRequest(r Request) (*Builder, error) {
	tmpl, err := selectForRequest(r)
	if err != nil {
		return nil, err
	}

	b, err := NewBuilder(tmpl)
	if err != nil {
		return nil, err
	}

	if r.NeedsImage() {
		if err := b.SetImage(r.Image); err != nil {
			return nil, err
		}
	}

	for i, line := range r.Lines {
		if err := b.SetTextLine(i+1, line); err != nil {
			return nil, err
		}
	}
	if len(r.Lines) != tmpl.TextSlots() {
		return nil, fmt.Errorf("%w: template %s has %d text lines, got %d", ErrLineCountMismatch, tmpl, tmpl.TextSlots(), len(r.Lines))
	}

	duration := DurationNormal
	if r.LongDuration {
		duration = DurationLong
	}
	if err := b.SetDuration(duration); err != nil {
		return nil, err
	}

	if err := applySound(b, r.Sound, r.LoopSound); err != nil {
		return nil, err
	}
	if err := b.SetLaunch(r.Launch); err != nil {
		return nil, err
	}
	return b, nil
}

func selectForRequest(r Request) (Template, error) {
	if strings.TrimSpace(r.Template) != "" {
		return SelectTemplate(r.Template)
	}
	return InferTemplate(len(r.Lines), r.NeedsImage())
}

func applySound(b *Builder, spec string, loop bool) error {
	sound, err := ParseSound(spec)
	if err != nil {
		return err
	}
	if sound == nil {
		return nil
	}
	if _, silent := sound.(Silent); silent {
		return b.DisableSound()
	}
	if err := b.SetSoundLooping(loop); err != nil {
		return err
	}
	return b.SetSound(sound)
}

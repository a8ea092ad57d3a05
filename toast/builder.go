package toast

import (
	"fmt"
	"strings"
)

// Duration selects how long the notification stays on screen.
type Duration int

const (
	DurationNormal Duration = iota
	DurationLong
)

const durationLong = "long"

func (d Duration) String() string {
	if d == DurationLong {
		return "Long"
	}
	return "Normal"
}

const urlSchemeSeparator = "://"

// Builder fills the slots of one template and renders a Document.
//
// Every mutator either applies completely or returns an error and leaves the
// builder unchanged. After the first Build call all mutators fail with
// ErrAlreadyBuilt. A Builder is not safe for concurrent use.
type Builder struct {
	template Template
	lines    []string
	image    string
	duration Duration
	launch   string

	// sound is the playable sound (Normal or Variable); silent suppresses it
	// without forgetting it.
	sound   Sound
	silent  bool
	looping bool

	built *Document
}

// NewBuilder returns a builder for template t with the default sound.
func NewBuilder(t Template) (*Builder, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, t)
	}
	return &Builder{
		template: t,
		lines:    make([]string, t.TextSlots()),
		sound:    Normal{Name: SoundDefault},
	}, nil
}

// Template returns the template being filled.
func (b *Builder) Template() Template {
	return b.template
}

// Built reports whether Build has been called.
func (b *Builder) Built() bool {
	return b.built != nil
}

func (b *Builder) checkMutable() error {
	if b.built != nil {
		return ErrAlreadyBuilt
	}
	return nil
}

// SetTextLine sets line index, counting from 1.
func (b *Builder) SetTextLine(index int, text string) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	if index < 1 || index > len(b.lines) {
		return fmt.Errorf("%w: line %d, template %s has %d text lines", ErrIndexOutOfRange, index, b.template, len(b.lines))
	}
	b.lines[index-1] = text
	return nil
}

// TextLine returns line index, counting from 1.
func (b *Builder) TextLine(index int) (string, error) {
	if index < 1 || index > len(b.lines) {
		return "", fmt.Errorf("%w: line %d, template %s has %d text lines", ErrIndexOutOfRange, index, b.template, len(b.lines))
	}
	return b.lines[index-1], nil
}

// SetImageFromFile shows a local image file.
func (b *Builder) SetImageFromFile(path string) error {
	return b.setImage(path, "file path")
}

// SetImageFromURL shows the image at url.
func (b *Builder) SetImageFromURL(url string) error {
	return b.setImage(url, "url")
}

// SetImage dispatches to SetImageFromURL when ref contains a scheme
// separator and to SetImageFromFile otherwise.
func (b *Builder) SetImage(ref string) error {
	if strings.Contains(ref, urlSchemeSeparator) {
		return b.SetImageFromURL(ref)
	}
	return b.SetImageFromFile(ref)
}

func (b *Builder) setImage(ref, kind string) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	if !b.template.HasImage() {
		return fmt.Errorf("%w: %s", ErrImageNotSupported, b.template)
	}
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("%w: %s is blank", ErrEmptyReference, kind)
	}
	b.image = ref
	return nil
}

// ClearImage removes a previously set image.
func (b *Builder) ClearImage() error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	b.image = ""
	return nil
}

// SetDuration sets the display duration.
func (b *Builder) SetDuration(d Duration) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	b.duration = d
	return nil
}

// SetLaunch sets the launch argument handed to whoever activates the
// notification. An empty arg removes it.
func (b *Builder) SetLaunch(arg string) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	b.launch = strings.TrimSpace(arg)
	return nil
}

// SetSound selects the sound. Silent disables audio; Normal and Variable
// select a sound and re-enable audio.
func (b *Builder) SetSound(s Sound) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	switch s := s.(type) {
	case Silent:
		b.silent = true
	case Normal:
		if s.Name < 0 || int(s.Name) >= len(normalSoundNames) {
			return fmt.Errorf("%w: %s", ErrUnknownSound, s.Name)
		}
		b.sound, b.silent = s, false
	case Variable:
		if s.Category < 0 || int(s.Category) >= len(categoryNames) {
			return fmt.Errorf("%w: %s", ErrUnknownSound, s.Category)
		}
		if err := checkVariant(s.Variant); err != nil {
			return err
		}
		b.sound, b.silent = s, false
	default:
		return fmt.Errorf("%w: no sound given", ErrUnknownSound)
	}
	return nil
}

// DisableSound is SetSound(Silent{}).
func (b *Builder) DisableSound() error {
	return b.SetSound(Silent{})
}

// SetSoundLooping sets whether the audio element carries loop="true".
// It re-enables a disabled sound.
func (b *Builder) SetSoundLooping(loop bool) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	b.looping, b.silent = loop, false
	return nil
}

// Build renders the document. The first call freezes the builder; later
// calls return the same *Document.
func (b *Builder) Build() *Document {
	if b.built != nil {
		return b.built
	}

	root := skeleton(b.template)
	for i, line := range b.lines {
		root.Visual.Binding.Texts[i].Text = line
	}
	if b.image != "" && root.Visual.Binding.Image != nil {
		root.Visual.Binding.Image.Src = ResolveImageSource(b.image)
	}
	if b.duration == DurationLong {
		root.Duration = durationLong
	}
	root.Launch = b.launch
	root.Audio = b.audio()

	b.built = &Document{root: root}
	return b.built
}

func (b *Builder) audio() *audioElement {
	if b.silent {
		return &audioElement{Silent: "true"}
	}
	src, ok := soundSource(b.sound)
	if !ok {
		return &audioElement{Silent: "true"}
	}
	a := &audioElement{Src: src}
	if b.looping {
		a.Loop = "true"
	}
	return a
}

// ResolveImageSource returns ref unchanged when it is a URL and converts a
// local path into a file:/// URL with forward slashes.
func ResolveImageSource(ref string) string {
	if strings.Contains(ref, urlSchemeSeparator) {
		return ref
	}
	p := strings.ReplaceAll(ref, `\`, "/")
	return "file:///" + strings.TrimPrefix(p, "/")
}

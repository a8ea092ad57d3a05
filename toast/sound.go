package toast

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalSound names one of the fixed notification sounds.
type NormalSound int

const (
	SoundDefault NormalSound = iota
	SoundIM
	SoundMail
	SoundReminder
	SoundSMS
)

var normalSoundNames = [...]string{
	SoundDefault:  "Default",
	SoundIM:       "IM",
	SoundMail:     "Mail",
	SoundReminder: "Reminder",
	SoundSMS:      "SMS",
}

func (s NormalSound) String() string {
	if s < 0 || int(s) >= len(normalSoundNames) {
		return fmt.Sprintf("NormalSound(%d)", int(s))
	}
	return normalSoundNames[s]
}

// SoundCategory names a sound family that comes in numbered variants.
type SoundCategory int

const (
	CategoryAlarm SoundCategory = iota
	CategoryCall
)

var categoryNames = [...]string{
	CategoryAlarm: "Alarm",
	CategoryCall:  "Call",
}

func (c SoundCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("SoundCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// Variant bounds for variable sounds.
const (
	MinVariant = 1
	MaxVariant = 10
)

const soundEventPrefix = "ms-winsoundevent:Notification."

// Sound is one of Silent, Normal or Variable.
type Sound interface {
	fmt.Stringer
	isSound()
}

// Silent disables audio for the notification.
type Silent struct{}

// Normal plays one fixed sound.
type Normal struct {
	Name NormalSound
}

// Variable plays variant Variant of a sound category.
type Variable struct {
	Category SoundCategory
	Variant  int
}

func (Silent) isSound()   {}
func (Normal) isSound()   {}
func (Variable) isSound() {}

func (Silent) String() string     { return "Off" }
func (n Normal) String() string   { return n.Name.String() }
func (v Variable) String() string { return fmt.Sprintf("%s;%d", v.Category, v.Variant) }

// NewVariable returns a Variable sound after checking the variant range.
func NewVariable(category SoundCategory, variant int) (Variable, error) {
	if err := checkVariant(variant); err != nil {
		return Variable{}, err
	}
	return Variable{Category: category, Variant: variant}, nil
}

func checkVariant(variant int) error {
	if variant < MinVariant || variant > MaxVariant {
		return fmt.Errorf("%w: %d (only variants %d to %d are possible)", ErrInvalidSoundVariant, variant, MinVariant, MaxVariant)
	}
	return nil
}

// soundSource computes the audio src attribute of a playable sound.
// Variable sounds always use the Looping naming, independent of the loop flag.
func soundSource(s Sound) (string, bool) {
	switch s := s.(type) {
	case Normal:
		return soundEventPrefix + s.Name.String(), true
	case Variable:
		src := soundEventPrefix + "Looping." + s.Category.String()
		if s.Variant > 1 {
			src += strconv.Itoa(s.Variant)
		}
		return src, true
	default:
		return "", false
	}
}

var disablePseudonyms = []string{"-", "disabled", "none", "off"}

func isDisablePseudonym(name string) bool {
	for _, p := range disablePseudonyms {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// ParseSound parses a sound specification of the form NAME[;VARIANT].
//
// An empty specification returns a nil Sound and no error: the caller keeps
// its default sound. The names "-", "disabled", "none" and "off" disable
// audio; a variant attached to them is rejected. Variants are accepted only
// for the Alarm and Call categories and default to 1.
func ParseSound(spec string) (Sound, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if isDisablePseudonym(spec) {
		return Silent{}, nil
	}

	name, variantText, _ := strings.Cut(spec, ";")
	name = strings.TrimSpace(name)
	variantText = strings.TrimSpace(variantText)

	variant := MinVariant
	hasVariant := variantText != ""
	if hasVariant {
		v, err := strconv.ParseUint(variantText, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSoundVariant, variantText)
		}
		if err := checkVariant(int(v)); err != nil {
			return nil, err
		}
		variant = int(v)
	}

	for c, cn := range categoryNames {
		if strings.EqualFold(cn, name) {
			return Variable{Category: SoundCategory(c), Variant: variant}, nil
		}
	}

	if hasVariant {
		return nil, fmt.Errorf("%w: the sound %q has no variants", ErrVariantNotApplicable, name)
	}

	for n, nn := range normalSoundNames {
		if strings.EqualFold(nn, name) {
			return Normal{Name: NormalSound(n)}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
}

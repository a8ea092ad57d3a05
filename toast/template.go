package toast

import (
	"fmt"
	"strings"
)

// Template identifies one of the standard toast templates.
type Template int

const (
	ToastImageAndText01 Template = iota
	ToastImageAndText02
	ToastImageAndText03
	ToastImageAndText04
	ToastText01
	ToastText02
	ToastText03
	ToastText04
)

// TemplateInfo describes the slots a template offers.
type TemplateInfo struct {
	Template  Template
	Name      string
	TextSlots int
	HasImage  bool
}

// catalog is ordered by Template value.
var catalog = [...]TemplateInfo{
	{ToastImageAndText01, "ToastImageAndText01", 1, true},
	{ToastImageAndText02, "ToastImageAndText02", 2, true},
	{ToastImageAndText03, "ToastImageAndText03", 2, true},
	{ToastImageAndText04, "ToastImageAndText04", 3, true},
	{ToastText01, "ToastText01", 1, false},
	{ToastText02, "ToastText02", 2, false},
	{ToastText03, "ToastText03", 2, false},
	{ToastText04, "ToastText04", 3, false},
}

// Catalog returns every available template.
func Catalog() []TemplateInfo {
	out := make([]TemplateInfo, len(catalog))
	copy(out, catalog[:])
	return out
}

func (t Template) valid() bool {
	return t >= 0 && int(t) < len(catalog)
}

// Info returns the catalog entry of t.
func (t Template) Info() TemplateInfo {
	if !t.valid() {
		return TemplateInfo{Template: t, Name: fmt.Sprintf("Template(%d)", int(t))}
	}
	return catalog[t]
}

func (t Template) String() string { return t.Info().Name }

// TextSlots is the number of text lines the template displays.
func (t Template) TextSlots() int { return t.Info().TextSlots }

// HasImage reports whether the template has an image slot.
func (t Template) HasImage() bool { return t.Info().HasImage }

// SelectTemplate looks a template up by name, ignoring case.
func SelectTemplate(name string) (Template, error) {
	name = strings.TrimSpace(name)
	for _, info := range catalog {
		if strings.EqualFold(info.Name, name) {
			return info.Template, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// InferTemplate picks the single template with exactly lines text slots and
// the requested image support. It fails with *NoMatchingTemplateError when no
// template fits and with *AmbiguousTemplateError when several do.
func InferTemplate(lines int, needImage bool) (Template, error) {
	var matches []Template
	for _, info := range catalog {
		if info.HasImage == needImage && info.TextSlots == lines {
			matches = append(matches, info.Template)
		}
	}

	switch len(matches) {
	case 0:
		return 0, &NoMatchingTemplateError{Lines: lines, NeedImage: needImage}
	case 1:
		return matches[0], nil
	default:
		return 0, &AmbiguousTemplateError{Lines: lines, NeedImage: needImage, Candidates: matches}
	}
}

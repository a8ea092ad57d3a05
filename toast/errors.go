package toast

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrValidation reports input that does not fit the catalog or the sound grammar.
	ErrValidation = errors.New("validation error")
	// ErrState reports a builder used outside its contract.
	ErrState = errors.New("state error")
)

var (
	ErrNoMatchingTemplate   = fmt.Errorf("%w: no matching template", ErrValidation)
	ErrAmbiguousTemplate    = fmt.Errorf("%w: ambiguous template", ErrValidation)
	ErrUnknownTemplate      = fmt.Errorf("%w: unknown template", ErrValidation)
	ErrImageNotSupported    = fmt.Errorf("%w: selected template does not support an image", ErrValidation)
	ErrEmptyReference       = fmt.Errorf("%w: empty image reference", ErrValidation)
	ErrInvalidSoundVariant  = fmt.Errorf("%w: invalid sound variant", ErrValidation)
	ErrVariantNotApplicable = fmt.Errorf("%w: variant not applicable", ErrValidation)
	ErrUnknownSound         = fmt.Errorf("%w: unknown sound", ErrValidation)
	ErrLineCountMismatch    = fmt.Errorf("%w: line count does not match template", ErrValidation)
	ErrInvalidDocument      = fmt.Errorf("%w: invalid toast document", ErrValidation)

	ErrAlreadyBuilt    = fmt.Errorf("%w: notification has already been built, changes are not allowed", ErrState)
	ErrIndexOutOfRange = fmt.Errorf("%w: text line index out of range", ErrState)
)

// NoMatchingTemplateError is returned by InferTemplate when no template has
// the requested shape.
type NoMatchingTemplateError struct {
	Lines     int
	NeedImage bool
}

func (e *NoMatchingTemplateError) Error() string {
	return fmt.Sprintf("no templates available for %d lines of text %s", e.Lines, imagePhrase(e.NeedImage))
}

func (e *NoMatchingTemplateError) Is(target error) bool {
	return target == ErrNoMatchingTemplate || target == ErrValidation
}

// AmbiguousTemplateError is returned by InferTemplate when more than one
// template has the requested shape. Candidates lists all of them so the
// caller can select one by name instead.
type AmbiguousTemplateError struct {
	Lines      int
	NeedImage  bool
	Candidates []Template
}

func (e *AmbiguousTemplateError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return fmt.Sprintf("%d templates available for %d lines of text %s, select one explicitly: %s",
		len(e.Candidates), e.Lines, imagePhrase(e.NeedImage), strings.Join(names, ", "))
}

func (e *AmbiguousTemplateError) Is(target error) bool {
	return target == ErrAmbiguousTemplate || target == ErrValidation
}

func imagePhrase(needImage bool) string {
	if needImage {
		return "and an image"
	}
	return "and no image"
}

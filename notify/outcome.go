package notify

import (
	"fmt"
	"strings"
)

// OutcomeKind is the terminal state of a display session.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota
	OutcomeActivated
	OutcomeDismissed
	OutcomeFailed
	OutcomeCancelled
)

var outcomeNames = [...]string{
	OutcomeUnknown:   "unknown",
	OutcomeActivated: "activated",
	OutcomeDismissed: "dismissed",
	OutcomeFailed:    "failed",
	OutcomeCancelled: "cancelled",
}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeNames) {
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
	return outcomeNames[k]
}

// DismissalReason says why the platform closed a notification.
type DismissalReason int

const (
	ReasonUnspecified DismissalReason = iota
	ReasonUserCanceled
	ReasonApplicationHidden
	ReasonTimedOut
)

var reasonNames = [...]string{
	ReasonUnspecified:       "Unspecified",
	ReasonUserCanceled:      "UserCanceled",
	ReasonApplicationHidden: "ApplicationHidden",
	ReasonTimedOut:          "TimedOut",
}

func (r DismissalReason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return reasonNames[ReasonUnspecified]
	}
	return reasonNames[r]
}

// ParseDismissalReason maps a platform reason name onto a DismissalReason.
// Unrecognized names map to ReasonUnspecified.
func ParseDismissalReason(s string) DismissalReason {
	s = strings.TrimSpace(s)
	for i, name := range reasonNames {
		if strings.EqualFold(name, s) {
			return DismissalReason(i)
		}
	}
	return ReasonUnspecified
}

// Outcome is the single result of a display session.
type Outcome struct {
	Kind OutcomeKind
	// Reason is set for OutcomeDismissed.
	Reason DismissalReason
	// Err is the platform error of an OutcomeFailed, if it reported one.
	Err error
}

// Activated is the outcome of a user clicking the notification.
func Activated() Outcome {
	return Outcome{Kind: OutcomeActivated}
}

// Dismissed is the outcome of the platform closing the notification.
func Dismissed(reason DismissalReason) Outcome {
	return Outcome{Kind: OutcomeDismissed, Reason: reason}
}

// Failed is the outcome of a notification the platform could not show.
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// Cancelled is the outcome of a caller that stopped waiting.
func Cancelled() Outcome {
	return Outcome{Kind: OutcomeCancelled}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeDismissed:
		return fmt.Sprintf("%s (%s)", o.Kind, o.Reason)
	case OutcomeFailed:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Kind, o.Err)
		}
	}
	return o.Kind.String()
}

// Report is the printable form of an Outcome.
type Report struct {
	Outcome string `json:"outcome" yaml:"outcome"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report converts o for output.
func (o Outcome) Report() Report {
	r := Report{Outcome: o.Kind.String()}
	if o.Kind == OutcomeDismissed {
		r.Reason = o.Reason.String()
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}

package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "activated", Activated().String())
	assert.Equal(t, "dismissed (UserCanceled)", Dismissed(ReasonUserCanceled).String())
	assert.Equal(t, "failed: boom", Failed(errors.New("boom")).String())
	assert.Equal(t, "failed", Failed(nil).String())
	assert.Equal(t, "cancelled", Cancelled().String())
	assert.Equal(t, "OutcomeKind(42)", OutcomeKind(42).String())
}

func TestParseDismissalReason(t *testing.T) {
	tests := map[string]DismissalReason{
		"UserCanceled":       ReasonUserCanceled,
		"usercanceled":       ReasonUserCanceled,
		" ApplicationHidden": ReasonApplicationHidden,
		"TimedOut":           ReasonTimedOut,
		"":                   ReasonUnspecified,
		"SomethingNew":       ReasonUnspecified,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseDismissalReason(in), in)
	}
	assert.Equal(t, "Unspecified", DismissalReason(-1).String())
}

func TestOutcomeReport(t *testing.T) {
	assert.Equal(t, Report{Outcome: "activated"}, Activated().Report())
	assert.Equal(t, Report{Outcome: "dismissed", Reason: "TimedOut"}, Dismissed(ReasonTimedOut).Report())
	assert.Equal(t, Report{Outcome: "failed", Error: "boom"}, Failed(errors.New("boom")).Report())
	assert.Equal(t, Report{Outcome: "cancelled"}, Cancelled().Report())
}

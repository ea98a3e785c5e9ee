package meshrr

import (
	"errors"
	"testing"
)

func TestWrapUnwrapsToTheUnderlyingCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindPersistenceFail, "failed to save tick", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to see through Wrap to its cause")
	}
	if err.Kind != KindPersistenceFail {
		t.Errorf("Kind = %q, want %q", err.Kind, KindPersistenceFail)
	}
}

func TestNewHasNoCause(t *testing.T) {
	err := New(KindValidationFail, "missing container")
	if err.Unwrap() != nil {
		t.Errorf("expected New to produce a causeless error")
	}
	if err.Error() == "" {
		t.Errorf("expected a non-empty error string")
	}
}

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("conn refused")
	err := Wrap(KindPersistenceFail, "failed to commit", cause)
	got := err.Error()
	if got == "" {
		t.Fatal("expected a non-empty error string")
	}
	// The message must surface both the classification and the
	// underlying cause so a log line alone is enough to diagnose.
	want := string(KindPersistenceFail) + ": failed to commit: conn refused"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

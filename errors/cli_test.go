package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	err := WithDetails(stderrors.New("boom"),
		"Step 4 (generate specifications) failed.",
		"extracted 0 specification(s), need at least 3",
		"Re-run with --resume.")

	s := err.Error()
	if !strings.Contains(s, "Step 4") {
		t.Errorf("message missing: %q", s)
	}
	if !strings.Contains(s, "need at least 3") {
		t.Errorf("details missing: %q", s)
	}
	if !strings.Contains(s, "--resume") {
		t.Errorf("suggestion missing: %q", s)
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	base := stderrors.New("boom")
	err := New(base, "it broke", "try again")

	if !stderrors.Is(err, base) {
		t.Error("errors.Is does not reach the wrapped error")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	var cliErr *CLIError
	if !stderrors.As(wrapped, &cliErr) {
		t.Fatal("errors.As does not find CLIError through wrapping")
	}
	if cliErr.Suggestion != "try again" {
		t.Errorf("Suggestion = %q", cliErr.Suggestion)
	}
}

func TestSuggestionAndMessage(t *testing.T) {
	err := New(stderrors.New("boom"), "it broke", "try again")

	if got := Suggestion(err); got != "try again" {
		t.Errorf("Suggestion = %q", got)
	}
	if got := Message(err); got != "it broke" {
		t.Errorf("Message = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := Suggestion(plain); got != "" {
		t.Errorf("Suggestion(plain) = %q, want empty", got)
	}
	if got := Message(plain); got != "plain failure" {
		t.Errorf("Message(plain) = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q, want empty", got)
	}
}

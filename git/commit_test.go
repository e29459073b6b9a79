package git

import (
	"strings"
	"testing"
)

func TestCommitMessage_String(t *testing.T) {
	msg := NewCommitMessage(CommitTypeChore, "initialize project scaffold").
		WithScope("demo").
		WithBody("Bootstrap artifacts.")

	s := msg.String()
	if !strings.HasPrefix(s, "chore(demo): initialize project scaffold") {
		t.Errorf("message = %q", s)
	}
	if !strings.Contains(s, "Bootstrap artifacts.") {
		t.Error("body missing")
	}
	if !strings.Contains(s, "Generated-By: projinit") {
		t.Error("generated-by trailer missing")
	}
}

func TestCommitMessage_SubjectLine(t *testing.T) {
	msg := NewCommitMessage(CommitTypeChore, "initialize project scaffold").
		WithScope("demo").
		WithBody("a body that must not appear in the subject")

	if got := msg.SubjectLine(); got != "chore(demo): initialize project scaffold" {
		t.Errorf("SubjectLine = %q", got)
	}

	plain := NewCommitMessage(CommitTypeDocs, "add design")
	if got := plain.SubjectLine(); got != "docs: add design" {
		t.Errorf("SubjectLine = %q", got)
	}
}

func TestCommitMessage_Validate(t *testing.T) {
	if err := NewCommitMessage(CommitTypeFeat, "add thing").Validate(); err != nil {
		t.Errorf("valid message rejected: %v", err)
	}

	if err := (&CommitMessage{Subject: "no type"}).Validate(); err == nil {
		t.Error("missing type accepted")
	}
	if err := (&CommitMessage{Type: CommitTypeFix}).Validate(); err == nil {
		t.Error("missing subject accepted")
	}
	if err := (&CommitMessage{
		Type:    CommitTypeFix,
		Subject: strings.Repeat("x", 101),
	}).Validate(); err == nil {
		t.Error("overlong subject accepted")
	}
}

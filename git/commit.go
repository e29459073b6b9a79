package git

import (
	"fmt"
	"strings"
)

// CommitType represents the type of change in a commit.
type CommitType string

const (
	CommitTypeFeat  CommitType = "feat"
	CommitTypeFix   CommitType = "fix"
	CommitTypeDocs  CommitType = "docs"
	CommitTypeChore CommitType = "chore"
)

// CommitMessage represents a structured commit message following
// conventional commits.
type CommitMessage struct {
	Type        CommitType // Required: type of change
	Scope       string     // Optional: area affected
	Subject     string     // Required: short description (imperative mood)
	Body        string     // Optional: detailed explanation
	GeneratedBy string     // Optional: tool that generated the commit
}

// NewCommitMessage creates a commit message with the projinit marker.
func NewCommitMessage(typ CommitType, subject string) *CommitMessage {
	return &CommitMessage{
		Type:        typ,
		Subject:     subject,
		GeneratedBy: "projinit",
	}
}

// WithScope adds a scope to the commit message.
func (c *CommitMessage) WithScope(scope string) *CommitMessage {
	c.Scope = scope
	return c
}

// WithBody adds a body to the commit message.
func (c *CommitMessage) WithBody(body string) *CommitMessage {
	c.Body = body
	return c
}

// SubjectLine returns only the first line of the formatted message. Used to
// detect a prior scaffold commit for the amend path.
func (c *CommitMessage) SubjectLine() string {
	var b strings.Builder
	b.WriteString(string(c.Type))
	if c.Scope != "" {
		b.WriteString("(")
		b.WriteString(c.Scope)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(c.Subject)
	return b.String()
}

// String formats the commit message following conventional commit format.
func (c *CommitMessage) String() string {
	var b strings.Builder
	b.WriteString(c.SubjectLine())

	if c.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(c.Body)
	}

	if c.GeneratedBy != "" {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Generated-By: %s", c.GeneratedBy))
	}

	return b.String()
}

// Validate checks if the commit message is valid.
func (c *CommitMessage) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("commit type is required")
	}
	if c.Subject == "" {
		return fmt.Errorf("commit subject is required")
	}
	if len(c.Subject) > 100 {
		return fmt.Errorf("commit subject too long (max 100 characters)")
	}
	return nil
}

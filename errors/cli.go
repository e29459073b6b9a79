package errors

import (
	"errors"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// New creates a CLIError.
func New(err error, message, suggestion string) *CLIError {
	return &CLIError{Err: err, Message: message, Suggestion: suggestion}
}

// WithDetails creates a CLIError carrying extra context.
func WithDetails(err error, message, details, suggestion string) *CLIError {
	return &CLIError{Err: err, Message: message, Details: details, Suggestion: suggestion}
}

// Suggestion extracts the suggestion from an error chain, or "".
func Suggestion(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Suggestion
	}
	return ""
}

// Message extracts the operator-facing message from an error chain. Falls
// back to Error() for plain errors.
func Message(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

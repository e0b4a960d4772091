package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "Validation"
	ErrorTypeCatalog    ErrorType = "Catalog"
	ErrorTypeEvaluation ErrorType = "Evaluation"
	ErrorTypeStorage    ErrorType = "Storage"
	ErrorTypeConfig     ErrorType = "Configuration"
)

// Error is a structured error with actionable guidance for CLI users
type Error struct {
	Type      ErrorType
	Message   string
	Cause     error
	Solutions []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s error: %s", strings.ToLower(string(e.Type)), e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Display renders the error with its solutions for terminal output
func (e *Error) Display() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Cause: %v\n", e.Cause))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, s := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}
	return sb.String()
}

// New creates a new structured error
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Wrap creates a new structured error around a cause
func Wrap(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// WithSolutions adds suggested fixes shown to CLI users
func (e *Error) WithSolutions(solutions ...string) *Error {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// IsType reports whether err is a structured error of the given type
func IsType(err error, errType ErrorType) bool {
	se, ok := err.(*Error)
	return ok && se.Type == errType
}

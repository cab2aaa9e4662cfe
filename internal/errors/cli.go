package errors

import "fmt"

// ErrorCategory tags a CLIError with the kind of failure for display and
// exit-code mapping.
type ErrorCategory int

const (
	// Argument covers invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration covers invalid or missing configuration.
	Configuration
	// Repository covers failed version-control operations.
	Repository
	// Runtime covers failures during command execution.
	Runtime
)

func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "argument"
	case Configuration:
		return "configuration"
	case Repository:
		return "repository"
	case Runtime:
		return "runtime"
	default:
		return "error"
	}
}

// CLIError is a categorized error with remediation guidance, rendered by
// the report formatter in format.go.
type CLIError struct {
	// Category is the kind of failure.
	Category ErrorCategory
	// Message describes what went wrong.
	Message string
	// Detail is verbatim supporting output (e.g. a failed tool's output),
	// rendered indented below the message.
	Detail string
	// Remediation lists actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax for argument errors.
	Usage string
}

func (e *CLIError) Error() string {
	return e.Message
}

// NewArgumentError creates an argument error with remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentErrorWithUsage creates an argument error that includes the
// correct command syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a runtime error with remediation steps.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// WrapWithMessage wraps err under a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// AsCLIError returns err as a CLIError, or nil when it is not one.
func AsCLIError(err error) *CLIError {
	cliErr, ok := err.(*CLIError)
	if ok {
		return cliErr
	}
	return nil
}

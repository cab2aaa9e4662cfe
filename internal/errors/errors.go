// Package errors provides structured error handling for the shipkit CLI.
// It defines the domain error types surfaced by the registry and release
// engine, plus categorized CLI errors with actionable remediation guidance.
package errors

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an unknown category or template identifier.
type NotFoundError struct {
	// Kind names what was looked up ("category" or "template").
	Kind string
	// ID is the identifier that failed to resolve.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given lookup kind and id.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// SourceMissingError indicates a registered template document is absent
// from the backing filesystem.
type SourceMissingError struct {
	// Path is the registered source path that could not be read.
	Path string
	// Err is the underlying filesystem error.
	Err error
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("template source %q is missing: %v", e.Path, e.Err)
}

func (e *SourceMissingError) Unwrap() error { return e.Err }

// RepositoryUnavailableError indicates the current directory is not inside
// a git repository, so no version-control operations are possible.
type RepositoryUnavailableError struct {
	// Path is the directory where repository detection started.
	Path string
	// Err is the underlying open error.
	Err error
}

func (e *RepositoryUnavailableError) Error() string {
	return fmt.Sprintf("not a git repository (searched from %s): %v", e.Path, e.Err)
}

func (e *RepositoryUnavailableError) Unwrap() error { return e.Err }

// IsRepositoryUnavailable reports whether err is (or wraps) a
// RepositoryUnavailableError.
func IsRepositoryUnavailable(err error) bool {
	var ru *RepositoryUnavailableError
	return errors.As(err, &ru)
}

// SubprocessFailureError wraps a non-zero exit from an external tool
// (formatter, test runner, publisher) run during a release.
type SubprocessFailureError struct {
	// Tool is the command that failed.
	Tool string
	// ExitCode is the tool's exit status.
	ExitCode int
	// Output is the tool's combined output, kept for error reporting.
	Output string
}

func (e *SubprocessFailureError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}

// ValidationError indicates an invalid CLI argument or configuration value.
type ValidationError struct {
	// Field names the argument or config key that failed validation.
	Field string
	// Message describes why the value is invalid.
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

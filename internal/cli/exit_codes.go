package cli

import (
	stderrors "errors"

	"github.com/ariel-frischer/shipkit/internal/errors"
)

// Exit codes for the shipkit CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitNoRepository indicates no git repository was found
	ExitNoRepository = 4
)

// ExitCodeFor maps an error returned by Execute to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.IsRepositoryUnavailable(err) {
		return ExitNoRepository
	}
	if isValidation(err) || errors.IsNotFound(err) {
		return ExitInvalidArguments
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil && cliErr.Category == errors.Argument {
		return ExitInvalidArguments
	}
	return ExitFailure
}

// isValidation reports whether err is (or wraps) a ValidationError.
func isValidation(err error) bool {
	var val *errors.ValidationError
	return stderrors.As(err, &val)
}

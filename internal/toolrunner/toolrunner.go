// Package toolrunner executes external tools (formatter, test runner,
// publisher) on behalf of the release flow, capturing output and wrapping
// non-zero exits in a SubprocessFailureError.
package toolrunner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/shipkit/internal/errors"
)

// Runner executes shell commands in a working directory.
type Runner struct {
	// Dir is the working directory for every command; empty means the
	// process working directory.
	Dir string
}

// Run executes command (a shell line, split on whitespace) and returns its
// combined output. A non-zero exit yields a SubprocessFailureError carrying
// the tool name, exit code, and output.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", &errors.ValidationError{Field: "command", Message: "empty command"}
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = r.Dir

	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(out), &errors.SubprocessFailureError{
			Tool:     fields[0],
			ExitCode: exitErr.ExitCode(),
			Output:   string(out),
		}
	}
	return string(out), fmt.Errorf("running %s: %w", fields[0], err)
}

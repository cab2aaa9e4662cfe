package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	failMark  = color.New(color.FgRed, color.Bold).SprintFunc()
	faintText = color.New(color.Faint).SprintFunc()
	cyanText  = color.New(color.FgCyan).SprintFunc()
	greenText = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Render writes the terminal report for any error the CLI surfaces.
func Render(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, Report(err))
}

// Report builds the colored terminal report for err.
func Report(err error) string {
	if err == nil {
		return ""
	}
	return render(coerce(err), true)
}

// ReportPlain builds the report without colors.
func ReportPlain(err error) string {
	if err == nil {
		return ""
	}
	return render(coerce(err), false)
}

// coerce folds the domain error types into a CLIError so every failure
// renders through one path, picking up a category and remediation hints.
func coerce(err error) *CLIError {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return &CLIError{
			Category:    Argument,
			Message:     err.Error(),
			Remediation: []string{"Run 'shipkit template list' to see the catalog"},
		}
	}

	var ru *RepositoryUnavailableError
	if errors.As(err, &ru) {
		return &CLIError{
			Category: Repository,
			Message:  err.Error(),
			Remediation: []string{
				"Run shipkit from inside a git repository",
				"Initialize one with 'git init'",
			},
		}
	}

	var val *ValidationError
	if errors.As(err, &val) {
		return &CLIError{Category: Argument, Message: err.Error()}
	}

	var sub *SubprocessFailureError
	if errors.As(err, &sub) {
		return &CLIError{
			Category: Runtime,
			Message:  err.Error(),
			Detail:   strings.TrimSpace(sub.Output),
		}
	}

	return &CLIError{Category: Runtime, Message: err.Error()}
}

// render lays the report out as a marked headline with the category tag,
// followed by indented detail, usage, and fix lines.
func render(e *CLIError, colored bool) string {
	mark := "✗"
	tag := fmt.Sprintf("[%s]", e.Category)
	usageLabel := "usage:"
	fixLabel := "fix:"
	detail := func(s string) string { return s }

	if colored {
		mark = failMark(mark)
		tag = faintText(tag)
		usageLabel = cyanText(usageLabel)
		fixLabel = greenText(fixLabel)
		detail = func(s string) string { return faintText(s) }
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n", mark, e.Message, tag)

	if e.Detail != "" {
		for _, line := range strings.Split(e.Detail, "\n") {
			fmt.Fprintf(&sb, "    %s\n", detail(line))
		}
	}

	if e.Usage != "" {
		fmt.Fprintf(&sb, "  %s %s\n", usageLabel, e.Usage)
	}

	for i, step := range e.Remediation {
		label := fixLabel
		if i > 0 {
			label = strings.Repeat(" ", len("fix:"))
		}
		fmt.Fprintf(&sb, "  %s %s\n", label, step)
	}

	return sb.String()
}

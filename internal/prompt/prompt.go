// Package prompt abstracts interactive terminal input so the release flow
// can be driven by scripted answers in tests. The terminal implementation
// presents numbered menus and yes/no confirmations over stdin.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter is the interactive-input capability consumed by the release
// flow and the template picker.
type Prompter interface {
	// ChooseOne presents options and returns the selected index.
	ChooseOne(prompt string, options []string) (int, error)
	// Confirm asks a yes/no question; default is no.
	Confirm(message string) (bool, error)
	// ReadText reads a free-text line.
	ReadText(prompt string) (string, error)
}

// Terminal prompts on r/w, typically stdin/stdout.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	// interactive tracks whether stdin is a terminal; when false, Confirm
	// declines and the other prompts error instead of blocking.
	interactive bool
}

// NewTerminal creates a Prompter over stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewTerminalWith creates a Prompter over explicit streams, treated as
// interactive. Used by tests and by callers that manage their own TTY.
func NewTerminalWith(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		reader:      bufio.NewReader(r),
		out:         w,
		interactive: true,
	}
}

// ChooseOne presents a numbered list and returns the selected index.
func (t *Terminal) ChooseOne(prompt string, options []string) (int, error) {
	if !t.interactive {
		return 0, fmt.Errorf("cannot prompt for %q: stdin is not a terminal", prompt)
	}

	fmt.Fprintf(t.out, "\n%s\n", prompt)
	for i, option := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprintf(t.out, "Enter number [1-%d]: ", len(options))

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(options) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(options))
	}
	return num - 1, nil
}

// Confirm asks message with a [y/N] suffix. Non-interactive stdin declines.
func (t *Terminal) Confirm(message string) (bool, error) {
	if !t.interactive {
		fmt.Fprintf(t.out, "%s → declined [non-interactive mode]\n", message)
		return false, nil
	}

	fmt.Fprintf(t.out, "%s [y/N] ", message)

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}

// ReadText reads one line of free text.
func (t *Terminal) ReadText(prompt string) (string, error) {
	if !t.interactive {
		return "", fmt.Errorf("cannot prompt for %q: stdin is not a terminal", prompt)
	}

	fmt.Fprintf(t.out, "%s: ", prompt)

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

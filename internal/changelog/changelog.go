// Package changelog maintains the project's CHANGELOG.md. New release
// sections are inserted immediately after the document's introductory
// header block, keeping the newest release on top. The file is read and
// fully rewritten; one invocation at a time is the operating assumption.
package changelog

import (
	"fmt"
	"os"
	"strings"
)

// DefaultFileName is the changelog file name at the project root.
const DefaultFileName = "CHANGELOG.md"

// defaultHeader starts a fresh changelog when none exists.
const defaultHeader = `# Changelog

All notable changes to this project will be documented in this file.

The format follows [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).
`

// Insert places fragment as the newest release section of the changelog at
// path, creating the file with a standard header when it does not exist.
// The fragment lands after the introductory header block (the first H1 and
// any prose before the first "## " section) and before any existing
// release sections.
func Insert(path, fragment string) error {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		existing = []byte(defaultHeader)
	} else if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}

	updated := insertAfterHeader(string(existing), fragment)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// insertAfterHeader splices fragment between the intro block and the first
// existing "## " section. A document with no sections gets the fragment
// appended after the intro.
func insertAfterHeader(doc, fragment string) string {
	fragment = strings.TrimRight(fragment, "\n") + "\n"

	idx := firstSectionIndex(doc)
	if idx < 0 {
		return strings.TrimRight(doc, "\n") + "\n\n" + fragment
	}

	intro := strings.TrimRight(doc[:idx], "\n")
	rest := doc[idx:]
	return intro + "\n\n" + fragment + "\n" + rest
}

// firstSectionIndex returns the offset of the first line starting with
// "## ", or -1 when the document has no release sections yet.
func firstSectionIndex(doc string) int {
	offset := 0
	for _, line := range strings.SplitAfter(doc, "\n") {
		if strings.HasPrefix(line, "## ") {
			return offset
		}
		offset += len(line)
	}
	return -1
}

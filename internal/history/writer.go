package history

import (
	"fmt"
	"io"
)

// Writer records releases with load-append-save semantics.
type Writer struct {
	// Dir is the directory containing the history file.
	Dir string
	// SampleCommits caps stored commits per entry (0 = default).
	SampleCommits int
}

// NewWriter creates a new history writer.
func NewWriter(dir string, sampleCommits int) *Writer {
	return &Writer{Dir: dir, SampleCommits: sampleCommits}
}

// Record appends a release entry and persists the document.
func (w *Writer) Record(entry Entry) error {
	f, err := Load(w.Dir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	f.Append(entry, w.SampleCommits)

	if err := Save(w.Dir, f); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// RecordNonFatal appends a release entry; a failure is reported as a
// warning on out instead of failing the release, since the tag already
// exists by the time history is recorded.
func (w *Writer) RecordNonFatal(entry Entry, out io.Writer) {
	if err := w.Record(entry); err != nil {
		fmt.Fprintf(out, "Warning: failed to record release history: %v\n", err)
	}
}

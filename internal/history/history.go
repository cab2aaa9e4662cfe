// Package history persists the release history of a project to
// .version-history.json. The file is read and fully rewritten on every
// mutation; the documented operating assumption is one CLI invocation at a
// time, so no file locking is used.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/shipkit/internal/commits"
)

// DefaultFileName is the history file name at the project root.
const DefaultFileName = ".version-history.json"

// DefaultSampleCommits caps how many commits are stored per entry.
const DefaultSampleCommits = 10

// Entry records one release.
type Entry struct {
	// Version is the released version (bare x.y.z).
	Version string `json:"version"`
	// Type is the bump type that produced this release (patch/minor/major/none).
	Type string `json:"type"`
	// Description is free text describing the release.
	Description string `json:"description,omitempty"`
	// Date is when the release was recorded.
	Date time.Time `json:"date"`
	// CommitCount is the number of commits included in the release.
	CommitCount int `json:"commitCount"`
	// Commits holds up to DefaultSampleCommits sample commits.
	Commits []commits.Commit `json:"commits,omitempty"`
	// PreviousVersion is the version this release was cut from.
	PreviousVersion string `json:"previousVersion"`
	// Increase is the bump type derived from comparing PreviousVersion
	// and Version under semantic-version ordering.
	Increase string `json:"increase"`
}

// File is the persisted version-history document. Versions are ordered
// newest first; TotalReleases always equals len(Versions).
type File struct {
	Versions      []Entry    `json:"versions"`
	LastRelease   *Entry     `json:"lastRelease"`
	TotalReleases int        `json:"totalReleases"`
	Created       time.Time  `json:"created"`
	Updated       time.Time  `json:"updated"`
}

// Path returns the history file path within dir.
func Path(dir string) string {
	return filepath.Join(dir, DefaultFileName)
}

// Load reads the history file from dir. A missing file yields an empty,
// freshly initialized document (lazy initialization on first access).
func Load(dir string) (*File, error) {
	data, err := os.ReadFile(Path(dir))
	if os.IsNotExist(err) {
		now := time.Now()
		return &File{Created: now, Updated: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &f, nil
}

// Save writes the full history document to dir, replacing any existing
// file. The Updated timestamp is refreshed.
func Save(dir string, f *File) error {
	f.Updated = time.Now()
	if f.Created.IsZero() {
		f.Created = f.Updated
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(Path(dir), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// Append prepends entry (newest first), updates the last-release pointer,
// and maintains the totalReleases invariant. Sample commits beyond
// sampleCap are dropped; sampleCap <= 0 means DefaultSampleCommits.
func (f *File) Append(entry Entry, sampleCap int) {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCommits
	}
	if len(entry.Commits) > sampleCap {
		entry.Commits = entry.Commits[:sampleCap]
	}

	f.Versions = append([]Entry{entry}, f.Versions...)
	f.LastRelease = &f.Versions[0]
	f.TotalReleases = len(f.Versions)
}

// CurrentVersion returns the most recent released version, or "" when no
// release has been recorded.
func (f *File) CurrentVersion() string {
	if f.LastRelease == nil {
		return ""
	}
	return f.LastRelease.Version
}

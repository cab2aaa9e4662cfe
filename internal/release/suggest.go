// Package release implements the version suggestion engine and the
// interactive release flow: classify commits since the last tag, derive
// the next semantic version, write the changelog, manifest and version
// history, then tag and optionally push.
package release

import (
	"time"

	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/gitrepo"
	"github.com/ariel-frischer/shipkit/internal/semver"
)

// Suggestion is the outcome of inspecting history since the last tag.
type Suggestion struct {
	// SinceTag is the tag the inspection started from ("" = whole history).
	SinceTag string
	// CurrentVersion is the version the bump applies to.
	CurrentVersion string
	// Buckets holds the classified commits.
	Buckets commits.Buckets
	// Commits is the raw commit list, newest first.
	Commits []commits.Commit
	// BumpType is major when breaking changes exist, minor for features,
	// patch otherwise.
	BumpType semver.BumpType
	// NextVersion is CurrentVersion with BumpType applied.
	NextVersion string
}

// CommitCount returns how many commits the suggestion covers.
func (s *Suggestion) CommitCount() int {
	return len(s.Commits)
}

// NothingToRelease reports whether no commits landed since the last tag.
func (s *Suggestion) NothingToRelease() bool {
	return len(s.Commits) == 0
}

// Fragment renders the changelog section for this suggestion.
func (s *Suggestion) Fragment(linkBase string, date time.Time) string {
	return commits.RenderFragment(s.Buckets, commits.RenderOptions{
		Version:  s.NextVersion,
		Date:     date,
		LinkBase: linkBase,
	})
}

// Suggest inspects repository history since the last reachable tag and
// derives a recommended next version. With no prior tag the entire history
// counts. Zero commits is a valid state: the suggestion reports patch with
// empty buckets and callers decide whether that means "nothing to release".
func Suggest(repo gitrepo.Repo, currentVersion string) (*Suggestion, error) {
	tag, err := repo.CurrentTag()
	if err != nil {
		return nil, err
	}

	list, err := repo.CommitsSince(tag)
	if err != nil {
		return nil, err
	}

	buckets := commits.ClassifyAll(list)
	bump := semver.BumpType(buckets.BumpType())

	next, err := semver.Bump(currentVersion, bump)
	if err != nil {
		return nil, err
	}

	return &Suggestion{
		SinceTag:       tag,
		CurrentVersion: currentVersion,
		Buckets:        buckets,
		Commits:        list,
		BumpType:       bump,
		NextVersion:    next,
	}, nil
}

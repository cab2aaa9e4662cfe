// Package commits models git commits and classifies them into release-note
// buckets using conventional-commit prefixes as a heuristic.
package commits

import (
	"strings"
	"time"
)

// Commit is a single commit parsed from repository history.
// Immutable once built; scoped to one CLI invocation.
type Commit struct {
	Hash    string    `json:"hash"`
	Subject string    `json:"subject"`
	Author  string    `json:"author,omitempty"`
	Date    time.Time `json:"date,omitempty"`
	Body    string    `json:"body,omitempty"`
}

// ShortHash returns the abbreviated commit hash used in changelog links.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Category names a classification bucket.
type Category string

const (
	Breaking    Category = "breaking"
	Feature     Category = "feature"
	Fix         Category = "fix"
	Docs        Category = "docs"
	Style       Category = "style"
	Refactor    Category = "refactor"
	Test        Category = "test"
	Performance Category = "performance"
	Security    Category = "security"
	Chore       Category = "chore"
	Other       Category = "other"
)

// classifier is one predicate in the priority-ordered classification chain.
type classifier struct {
	category Category
	matches  func(subject, body string) bool
}

// classifiers is evaluated in order; the first match wins, so every commit
// lands in exactly one bucket. Inputs are lowercased before matching.
var classifiers = []classifier{
	{Breaking, func(subject, body string) bool {
		return strings.Contains(subject, "breaking") || strings.Contains(body, "breaking")
	}},
	{Feature, prefixMatch("feat", "feature")},
	{Fix, prefixMatch("fix")},
	{Docs, prefixMatch("docs")},
	{Style, prefixMatch("style")},
	{Refactor, prefixMatch("refactor")},
	{Test, prefixMatch("test")},
	{Performance, prefixMatch("perf")},
	{Security, func(subject, body string) bool {
		return strings.HasPrefix(subject, "security") || strings.Contains(subject, "vulnerability")
	}},
	{Chore, prefixMatch("chore")},
}

func prefixMatch(prefixes ...string) func(subject, body string) bool {
	return func(subject, _ string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(subject, p) {
				return true
			}
		}
		return false
	}
}

// Classify returns the bucket for a single commit.
func Classify(c Commit) Category {
	subject := strings.ToLower(c.Subject)
	body := strings.ToLower(c.Body)
	for _, cl := range classifiers {
		if cl.matches(subject, body) {
			return cl.category
		}
	}
	return Other
}

// Buckets groups commits by category, preserving input order within each
// bucket. Built fresh per invocation; never shared.
type Buckets map[Category][]Commit

// ClassifyAll distributes commits into buckets. Every commit lands in
// exactly one bucket.
func ClassifyAll(commits []Commit) Buckets {
	buckets := make(Buckets)
	for _, c := range commits {
		cat := Classify(c)
		buckets[cat] = append(buckets[cat], c)
	}
	return buckets
}

// Total returns the number of commits across all buckets.
func (b Buckets) Total() int {
	n := 0
	for _, commits := range b {
		n += len(commits)
	}
	return n
}

// BumpType returns the semantic version component a release of these
// commits should increment: major for breaking changes, minor for new
// features, patch otherwise.
func (b Buckets) BumpType() string {
	if len(b[Breaking]) > 0 {
		return "major"
	}
	if len(b[Feature]) > 0 {
		return "minor"
	}
	return "patch"
}

// CleanSubject strips a conventional-commit prefix (with optional scope)
// from a subject line for changelog display.
func CleanSubject(subject string) string {
	trimmed := strings.TrimSpace(subject)
	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return trimmed
	}

	prefix := strings.ToLower(trimmed[:idx])
	// Drop a "(scope)" qualifier and "!" breaking marker before matching.
	if open := strings.Index(prefix, "("); open > 0 {
		prefix = prefix[:open]
	}
	prefix = strings.TrimSuffix(prefix, "!")

	switch prefix {
	case "feat", "feature", "fix", "docs", "style", "refactor", "test", "perf", "security", "chore", "breaking":
		return strings.TrimSpace(trimmed[idx+1:])
	}
	return trimmed
}

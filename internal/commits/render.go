package commits

import (
	"fmt"
	"strings"
	"time"
)

// displayOrder is the fixed subsection order for rendered changelog
// fragments. The "other" bucket is counted but never rendered.
var displayOrder = []struct {
	category Category
	heading  string
}{
	{Breaking, "Breaking Changes"},
	{Feature, "Features"},
	{Fix, "Bug Fixes"},
	{Security, "Security"},
	{Performance, "Performance"},
	{Docs, "Documentation"},
	{Refactor, "Refactoring"},
	{Test, "Tests"},
	{Style, "Style"},
	{Chore, "Chores"},
}

// RenderOptions controls changelog fragment rendering.
type RenderOptions struct {
	// Version is the release version placed in the section heading.
	Version string
	// Date is the release date; zero means time.Now.
	Date time.Time
	// LinkBase is prepended to the full commit hash to form commit links.
	LinkBase string
}

// RenderFragment builds the markdown section for one release: a dated
// heading followed by one subsection per non-empty bucket with one bullet
// per commit. Returns the heading alone when every bucket is empty.
func RenderFragment(buckets Buckets, opts RenderOptions) string {
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## [%s] - %s\n", opts.Version, date.Format("2006-01-02"))

	for _, section := range displayOrder {
		entries := buckets[section.category]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n### %s\n\n", section.heading)
		for _, c := range entries {
			fmt.Fprintf(&sb, "- %s ([%s](%s%s))\n", CleanSubject(c.Subject), c.ShortHash(), opts.LinkBase, c.Hash)
		}
	}

	return sb.String()
}

// Summary returns a one-line per-bucket count summary for status output,
// following display order and skipping empty buckets.
func Summary(buckets Buckets) string {
	var parts []string
	for _, section := range displayOrder {
		if n := len(buckets[section.category]); n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", section.category, n))
		}
	}
	if n := len(buckets[Other]); n > 0 {
		parts = append(parts, fmt.Sprintf("other: %d", n))
	}
	return strings.Join(parts, ", ")
}

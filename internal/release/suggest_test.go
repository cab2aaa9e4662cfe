package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/semver"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subjects []string
		current  string
		wantBump semver.BumpType
		wantNext string
	}{
		"feature present suggests minor": {
			subjects: []string{"feat: add login", "fix: null check", "chore: bump deps"},
			current:  "1.2.3",
			wantBump: semver.Minor,
			wantNext: "1.3.0",
		},
		"breaking suggests major": {
			subjects: []string{"feat: breaking rework", "fix: small"},
			current:  "1.2.3",
			wantBump: semver.Major,
			wantNext: "2.0.0",
		},
		"fixes only suggest patch": {
			subjects: []string{"fix: a", "docs: b"},
			current:  "1.2.3",
			wantBump: semver.Patch,
			wantNext: "1.2.4",
		},
		"zero commits still valid": {
			subjects: nil,
			current:  "1.2.3",
			wantBump: semver.Patch,
			wantNext: "1.2.4",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var list []commits.Commit
			for i, s := range tc.subjects {
				list = append(list, commits.Commit{Hash: string(rune('a'+i)) + "bc1234def", Subject: s})
			}
			repo := &fakeRepo{tag: "v" + tc.current, commits: list}

			suggestion, err := Suggest(repo, tc.current)
			require.NoError(t, err)

			assert.Equal(t, tc.wantBump, suggestion.BumpType)
			assert.Equal(t, tc.wantNext, suggestion.NextVersion)
			assert.Equal(t, len(tc.subjects), suggestion.CommitCount())
			assert.Equal(t, len(tc.subjects) == 0, suggestion.NothingToRelease())
		})
	}
}

func TestSuggest_ClassificationScenario(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: []commits.Commit{
		{Hash: "aaa1111", Subject: "feat: add login"},
		{Hash: "bbb2222", Subject: "fix: null check"},
		{Hash: "ccc3333", Subject: "chore: bump deps"},
	}}

	suggestion, err := Suggest(repo, "0.1.0")
	require.NoError(t, err)

	assert.Len(t, suggestion.Buckets[commits.Feature], 1)
	assert.Len(t, suggestion.Buckets[commits.Fix], 1)
	assert.Len(t, suggestion.Buckets[commits.Chore], 1)
	assert.Empty(t, suggestion.Buckets[commits.Breaking])
	assert.Equal(t, semver.Minor, suggestion.BumpType)
}

func TestSuggestion_Fragment(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: []commits.Commit{{Hash: "abc1234def", Subject: "feat: add login"}}}

	suggestion, err := Suggest(repo, "0.1.0")
	require.NoError(t, err)

	fragment := suggestion.Fragment("../../commit/", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, fragment, "## [0.2.0] - 2026-08-30")
	assert.Contains(t, fragment, "- add login ([abc1234](../../commit/abc1234def))")
}

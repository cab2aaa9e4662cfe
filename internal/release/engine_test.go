package release

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/history"
	"github.com/ariel-frischer/shipkit/internal/manifest"
	"github.com/ariel-frischer/shipkit/internal/prompt"
	"github.com/ariel-frischer/shipkit/internal/semver"
)

// fakeRepo is an in-memory gitrepo.Repo for driving the engine in tests.
type fakeRepo struct {
	tag          string
	commits      []commits.Commit
	clean        bool
	createdTags  []string
	createTagErr error
	pushErr      error
	pushed       bool
}

func (f *fakeRepo) CurrentTag() (string, error) { return f.tag, nil }

func (f *fakeRepo) CommitsSince(tag string) ([]commits.Commit, error) { return f.commits, nil }

func (f *fakeRepo) CreateTag(name, message string) error {
	if f.createTagErr != nil {
		return f.createTagErr
	}
	f.createdTags = append(f.createdTags, name)
	return nil
}

func (f *fakeRepo) IsClean() (bool, error) { return f.clean, nil }

func (f *fakeRepo) Push(ctx context.Context) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = true
	return nil
}

// newEngine wires an engine over a temp project directory.
func newEngine(t *testing.T, repo *fakeRepo, prompter prompt.Prompter) (*Engine, string) {
	t.Helper()

	dir := t.TempDir()
	return &Engine{
		Repo:          repo,
		Prompter:      prompter,
		Out:           &bytes.Buffer{},
		ChangelogPath: filepath.Join(dir, "CHANGELOG.md"),
		ManifestPath:  filepath.Join(dir, "shipkit.yml"),
		HistoryDir:    dir,
		TagPrefix:     "v",
		LinkBase:      "../../commit/",
		Now:           func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	}, dir
}

func featureCommits() []commits.Commit {
	return []commits.Commit{
		{Hash: "abc1234def0000000000", Subject: "feat: add login"},
		{Hash: "bcd2345efa0000000000", Subject: "fix: null check"},
		{Hash: "cde3456fab0000000000", Subject: "chore: bump deps"},
	}
}

func TestRun_FullFlow(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{tag: "v0.1.0", commits: featureCommits(), clean: true}
	// Choose the suggested bump (minor is index 1 of patch/minor/major),
	// confirm the release, then enter a description.
	scripted := &prompt.Scripted{
		Choices:  []int{1},
		Confirms: []bool{true},
		Texts:    []string{"adds the login flow"},
	}
	engine, dir := newEngine(t, repo, scripted)

	require.NoError(t, engine.Run(context.Background(), Options{}))

	// Tag created with prefix.
	assert.Equal(t, []string{"v0.2.0"}, repo.createdTags)

	// Changelog written with the new section.
	data, err := os.ReadFile(engine.ChangelogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## [0.2.0] - 2026-08-30")
	assert.Contains(t, string(data), "- add login")

	// Manifest version updated.
	m, err := manifest.Load(engine.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", m.Version)

	// History entry recorded with a derivable increase.
	hist, err := history.Load(dir)
	require.NoError(t, err)
	require.Equal(t, 1, hist.TotalReleases)
	entry := hist.Versions[0]
	assert.Equal(t, "0.2.0", entry.Version)
	assert.Equal(t, "minor", entry.Type)
	assert.Equal(t, "0.0.0", entry.PreviousVersion)
	assert.Equal(t, "minor", entry.Increase)
	assert.Equal(t, 3, entry.CommitCount)
	assert.Equal(t, "adds the login flow", entry.Description)

	// No push unless configured.
	assert.False(t, repo.pushed)
}

func TestRun_UsesHistoryForCurrentVersion(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{tag: "v1.2.0", commits: []commits.Commit{{Hash: "aaa111", Subject: "fix: bug"}}, clean: true}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true

	f := &history.File{}
	f.Append(history.Entry{Version: "1.2.0", Type: "minor", PreviousVersion: "1.1.0", Increase: "minor"}, 0)
	require.NoError(t, history.Save(dir, f))

	require.NoError(t, engine.Run(context.Background(), Options{NonInteractive: true}))
	assert.Equal(t, []string{"v1.2.1"}, repo.createdTags)
}

func TestRun_DirtyWorktreeDeclined(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: false}
	scripted := &prompt.Scripted{Confirms: []bool{false}}
	engine, dir := newEngine(t, repo, scripted)

	err := engine.Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, repo.createdTags)
	assert.NoFileExists(t, filepath.Join(dir, history.DefaultFileName))
}

func TestRun_ConfirmDeclinedWritesNothing(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true}
	scripted := &prompt.Scripted{Choices: []int{0}, Confirms: []bool{false}}
	engine, dir := newEngine(t, repo, scripted)

	err := engine.Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, repo.createdTags)
	assert.NoFileExists(t, engine.ChangelogPath)
	assert.NoFileExists(t, filepath.Join(dir, history.DefaultFileName))
}

func TestRun_NothingToRelease(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{tag: "v1.0.0", clean: true}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})

	err := engine.Run(context.Background(), Options{NonInteractive: true})
	assert.ErrorIs(t, err, ErrNothingToRelease)
	assert.NoFileExists(t, filepath.Join(dir, history.DefaultFileName))
}

func TestRun_TagFailureLeavesWritesInPlace(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true, createTagErr: assert.AnError}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true

	err := engine.Run(context.Background(), Options{NonInteractive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create tag")

	// Files written before the tag step stay in place; no rollback. The
	// history record comes after tagging, so it was never written.
	assert.FileExists(t, engine.ChangelogPath)
	assert.FileExists(t, engine.ManifestPath)
	assert.NoFileExists(t, filepath.Join(dir, history.DefaultFileName))
}

func TestRun_HistoryWriteFailureWarnsButReleases(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true

	// Point the history writer at a directory that does not exist so its
	// save fails after the tag is created.
	engine.HistoryDir = filepath.Join(dir, "missing", "nested")
	var out bytes.Buffer
	engine.Out = &out

	require.NoError(t, engine.Run(context.Background(), Options{NonInteractive: true}))
	assert.Equal(t, []string{"v0.1.0"}, repo.createdTags)
	assert.Contains(t, out.String(), "Warning: failed to record release history")
}

func TestRun_RejectsNonIncreasingBump(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true

	err := engine.Run(context.Background(), Options{BumpType: semver.None, NonInteractive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not greater than")

	assert.Empty(t, repo.createdTags)
	assert.NoFileExists(t, engine.ChangelogPath)
	assert.NoFileExists(t, filepath.Join(dir, history.DefaultFileName))
}

func TestRun_PushOnRelease(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true}
	engine, _ := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true
	engine.PushOnRelease = true

	require.NoError(t, engine.Run(context.Background(), Options{NonInteractive: true}))
	assert.True(t, repo.pushed)
}

func TestRun_ForcedBumpType(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: featureCommits(), clean: true}
	engine, _ := newEngine(t, repo, &prompt.Scripted{})
	engine.SkipConfirmations = true

	require.NoError(t, engine.Run(context.Background(), Options{BumpType: semver.Major, NonInteractive: true}))
	assert.Equal(t, []string{"v1.0.0"}, repo.createdTags)
}

func TestPatch(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{commits: []commits.Commit{{Hash: "abc1234", Subject: "fix: urgent"}}, clean: true}
	engine, dir := newEngine(t, repo, &prompt.Scripted{})

	require.NoError(t, engine.Patch(context.Background(), "hotfix for prod crash"))
	assert.Equal(t, []string{"v0.0.1"}, repo.createdTags)

	hist, err := history.Load(dir)
	require.NoError(t, err)
	require.Equal(t, 1, hist.TotalReleases)
	assert.Equal(t, "patch", hist.Versions[0].Type)
	assert.Equal(t, "hotfix for prod crash", hist.Versions[0].Description)
}

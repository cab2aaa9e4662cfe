package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipkit/internal/errors"
)

// initRepo creates a git repository with a configured worktree in a
// temporary directory and returns its path.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

// commitFile writes a file and commits it, returning the commit hash string.
func commitFile(t *testing.T, dir string, repo *git.Repository, name, message string) string {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)

	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

// lightweightTag creates a lightweight tag at HEAD.
func lightweightTag(t *testing.T, repo *git.Repository, name string) {
	t.Helper()

	head, err := repo.Head()
	require.NoError(t, err)

	_, err = repo.CreateTag(name, head.Hash(), nil)
	require.NoError(t, err)
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsRepositoryUnavailable(err))
}

func TestCurrentTag(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	client, err := Open(dir)
	require.NoError(t, err)

	// No commits, no tags.
	tag, err := client.CurrentTag()
	require.NoError(t, err)
	assert.Empty(t, tag)

	commitFile(t, dir, repo, "a.txt", "feat: first")

	// Commits but no tags.
	tag, err = client.CurrentTag()
	require.NoError(t, err)
	assert.Empty(t, tag)

	lightweightTag(t, repo, "v0.1.0")
	commitFile(t, dir, repo, "b.txt", "fix: second")

	tag, err = client.CurrentTag()
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", tag)
}

func TestCurrentTag_MostRecentWins(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: first")
	lightweightTag(t, repo, "v0.1.0")
	commitFile(t, dir, repo, "b.txt", "feat: second")
	lightweightTag(t, repo, "v0.2.0")
	commitFile(t, dir, repo, "c.txt", "fix: third")

	client, err := Open(dir)
	require.NoError(t, err)

	tag, err := client.CurrentTag()
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", tag)
}

func TestCommitsSince(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: first")
	lightweightTag(t, repo, "v0.1.0")
	commitFile(t, dir, repo, "b.txt", "fix: second")
	commitFile(t, dir, repo, "c.txt", "chore: third")

	client, err := Open(dir)
	require.NoError(t, err)

	since, err := client.CommitsSince("v0.1.0")
	require.NoError(t, err)
	require.Len(t, since, 2)

	// Newest first; the tagged commit is excluded.
	assert.Equal(t, "chore: third", since[0].Subject)
	assert.Equal(t, "fix: second", since[1].Subject)
	assert.Equal(t, "tester", since[0].Author)
	assert.NotEmpty(t, since[0].Hash)
}

func TestCommitsSince_NoTagMeansWholeHistory(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	for i := 0; i < 3; i++ {
		commitFile(t, dir, repo, fmt.Sprintf("f%d.txt", i), fmt.Sprintf("feat: change %d", i))
	}

	client, err := Open(dir)
	require.NoError(t, err)

	all, err := client.CommitsSince("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCommitsSince_ZeroSinceTag(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: first")
	lightweightTag(t, repo, "v0.1.0")

	client, err := Open(dir)
	require.NoError(t, err)

	since, err := client.CommitsSince("v0.1.0")
	require.NoError(t, err)
	assert.Empty(t, since)
}

func TestCommitsSince_MessageBodySplit(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: rework API\n\nBREAKING CHANGE: removes the old endpoint")

	client, err := Open(dir)
	require.NoError(t, err)

	all, err := client.CommitsSince("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "feat: rework API", all[0].Subject)
	assert.Equal(t, "BREAKING CHANGE: removes the old endpoint", all[0].Body)
}

func TestCreateTag(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: first")

	client, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, client.CreateTag("v1.0.0", "Release 1.0.0"))

	// The new tag is now the current tag.
	tag, err := client.CurrentTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", tag)

	// Duplicate tag names are rejected.
	assert.Error(t, client.CreateTag("v1.0.0", "again"))
}

func TestIsClean(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "feat: first")

	client, err := Open(dir)
	require.NoError(t, err)

	clean, err := client.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("wip"), 0o644))

	clean, err = client.IsClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

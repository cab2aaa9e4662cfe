package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogFile)
	assert.Equal(t, "shipkit.yml", cfg.ManifestFile)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "../../commit/", cfg.CommitLinkBase)
	assert.Equal(t, 10, cfg.SampleCommits)
	assert.False(t, cfg.SkipConfirmations)
	assert.False(t, cfg.PushOnRelease)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `tag_prefix: release-
changelog_file: docs/CHANGES.md
push_on_release: true
sample_commits: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "release-", cfg.TagPrefix)
	assert.Equal(t, "docs/CHANGES.md", cfg.ChangelogFile)
	assert.True(t, cfg.PushOnRelease)
	assert.Equal(t, 5, cfg.SampleCommits)
	// Untouched keys keep their defaults.
	assert.Equal(t, "shipkit.yml", cfg.ManifestFile)
}

func TestLoad_EnvironmentOverridesProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag_prefix: release-\n"), 0o644))

	t.Setenv("SHIPKIT_TAG_PREFIX", "ver-")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ver-", cfg.TagPrefix)
}

func TestLoad_YesEnvSkipsConfirmations(t *testing.T) {
	t.Setenv("SHIPKIT_YES", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.True(t, cfg.SkipConfirmations)
}

func TestLoad_InvalidSampleCommitsFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("sample_commits: -3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.SampleCommits)
}

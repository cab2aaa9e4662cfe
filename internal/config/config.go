// Package config provides hierarchical configuration management for
// shipkit using koanf. Configuration is loaded with priority: environment
// variables > project config (.shipkit/config.yml) > user config
// (~/.config/shipkit/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the shipkit CLI tool configuration.
type Configuration struct {
	// ChangelogFile is the changelog path relative to the project root.
	ChangelogFile string `koanf:"changelog_file"`

	// HistoryDir is the directory holding .version-history.json
	// (default: the project root).
	HistoryDir string `koanf:"history_dir"`

	// ManifestFile is the project manifest path relative to the project root.
	ManifestFile string `koanf:"manifest_file"`

	// CommitLinkBase is prepended to commit hashes in changelog links.
	CommitLinkBase string `koanf:"commit_link_base"`

	// TagPrefix is prepended to the version when creating release tags.
	TagPrefix string `koanf:"tag_prefix"`

	// SkipConfirmations skips confirmation prompts (also via SHIPKIT_YES).
	SkipConfirmations bool `koanf:"skip_confirmations"`

	// PushOnRelease pushes the branch and tags after tagging.
	PushOnRelease bool `koanf:"push_on_release"`

	// FormatCmd is an optional formatter run before release writes.
	FormatCmd string `koanf:"format_cmd"`

	// TestCmd is an optional test command run before release writes.
	TestCmd string `koanf:"test_cmd"`

	// SampleCommits caps how many commits each history entry stores.
	SampleCommits int `koanf:"sample_commits"`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file":     "CHANGELOG.md",
		"history_dir":        ".",
		"manifest_file":      "shipkit.yml",
		"commit_link_base":   "../../commit/",
		"tag_prefix":         "v",
		"skip_confirmations": false,
		"push_on_release":    false,
		"format_cmd":         "",
		"test_cmd":           "",
		"sample_commits":     10,
	}
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadFileConfig(k, userConfigPath(), "user"); err != nil {
		return nil, err
	}

	projectPath := projectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadFileConfig(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("SHIPKIT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if os.Getenv("SHIPKIT_YES") != "" {
		cfg.SkipConfirmations = true
	}

	if cfg.SampleCommits <= 0 {
		cfg.SampleCommits = 10
	}

	return &cfg, nil
}

// loadFileConfig loads a YAML config file if it exists.
func loadFileConfig(k *koanf.Koanf, path, configType string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: SHIPKIT_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPKIT_"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Package manifest reads and updates the project manifest (shipkit.yml),
// which carries the project's name and current version.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the manifest file name at the project root.
const DefaultFileName = "shipkit.yml"

// Manifest represents the contents of shipkit.yml.
type Manifest struct {
	// Name is the project identifier.
	Name string `yaml:"name"`

	// Version is the project's current released version (bare x.y.z).
	Version string `yaml:"version"`

	// Description is an optional one-line project summary.
	Description string `yaml:"description,omitempty"`

	// CreatedAt is when the manifest was first created.
	CreatedAt time.Time `yaml:"created_at,omitempty"`

	// UpdatedAt is when the manifest was last modified.
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// Load reads and parses a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest to path, refreshing UpdatedAt.
func Save(path string, m *Manifest) error {
	m.UpdatedAt = time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.UpdatedAt
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// SetVersion updates the version field of the manifest at path in place.
// A missing manifest is created with just the version set, so projects
// that have never released still get a manifest on first release.
func SetVersion(path, version string) error {
	m, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		m = &Manifest{}
	} else if err != nil {
		return err
	}

	m.Version = version
	return Save(path, m)
}

// CurrentVersion returns the manifest's version, or fallback when the
// manifest is missing or has no version field.
func CurrentVersion(path, fallback string) string {
	m, err := Load(path)
	if err != nil || m.Version == "" {
		return fallback
	}
	return m.Version
}

// Package semver wraps Masterminds/semver with the small set of operations
// shipkit needs: v-prefix tolerant parsing, bump arithmetic, and deriving
// which component changed between two versions.
package semver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/shipkit/internal/errors"
)

// BumpType identifies which semantic version component to increment.
type BumpType string

const (
	// Major bumps x in x.y.z and resets minor and patch.
	Major BumpType = "major"
	// Minor bumps y in x.y.z and resets patch.
	Minor BumpType = "minor"
	// Patch bumps z in x.y.z.
	Patch BumpType = "patch"
	// None indicates no component changed.
	None BumpType = "none"
)

// ValidBumpTypes lists the bump types a user may request.
func ValidBumpTypes() []string {
	return []string{string(Patch), string(Minor), string(Major)}
}

// ValidateBumpType checks that s names a requestable bump type.
func ValidateBumpType(s string) (BumpType, error) {
	switch BumpType(s) {
	case Major, Minor, Patch:
		return BumpType(s), nil
	}
	return "", &errors.ValidationError{
		Field:   "type",
		Message: fmt.Sprintf("invalid version type %q: must be one of %s", s, strings.Join(ValidBumpTypes(), ", ")),
	}
}

// Parse parses a version string, tolerating a leading "v".
func Parse(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

// Bump applies the given bump type to version and returns the result as a
// bare x.y.z string. A bump of None returns the normalized input unchanged.
func Bump(version string, bump BumpType) (string, error) {
	v, err := Parse(version)
	if err != nil {
		return "", err
	}

	var next semver.Version
	switch bump {
	case Major:
		next = v.IncMajor()
	case Minor:
		next = v.IncMinor()
	case Patch:
		next = v.IncPatch()
	case None:
		next = *v
	default:
		return "", fmt.Errorf("unknown bump type %q", bump)
	}
	return next.String(), nil
}

// Increase derives which component changed between prev and next by pure
// component comparison. Returns None when the versions are equal or next is
// not greater than prev.
func Increase(prev, next string) (BumpType, error) {
	pv, err := Parse(prev)
	if err != nil {
		return None, err
	}
	nv, err := Parse(next)
	if err != nil {
		return None, err
	}

	if !nv.GreaterThan(pv) {
		return None, nil
	}
	switch {
	case nv.Major() > pv.Major():
		return Major, nil
	case nv.Minor() > pv.Minor():
		return Minor, nil
	case nv.Patch() > pv.Patch():
		return Patch, nil
	}
	return None, nil
}

// Compare returns -1, 0, or 1 when a is less than, equal to, or greater
// than b. Both inputs tolerate a leading "v".
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}

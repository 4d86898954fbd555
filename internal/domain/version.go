package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version for additional methods.
type Version struct {
	*semver.Version
}

// NewVersion creates a new Version from a string.
func NewVersion(s string) (*Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// VersionFromTag parses the version embedded in a tag name, tolerating an
// arbitrary release-train prefix (e.g. "rel-1.2.3" with prefix "rel-").
func VersionFromTag(tag, prefix string) (*Version, error) {
	raw := strings.TrimPrefix(tag, prefix)
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("tag %q does not carry a semantic version: %w", tag, err)
	}
	return &Version{v}, nil
}

// BumpMajor increments the major version.
func (v *Version) BumpMajor() *Version {
	newVer := v.IncMajor()
	return &Version{&newVer}
}

// BumpMinor increments the minor version.
func (v *Version) BumpMinor() *Version {
	newVer := v.IncMinor()
	return &Version{&newVer}
}

// BumpPatch increments the patch version.
func (v *Version) BumpPatch() *Version {
	newVer := v.IncPatch()
	return &Version{&newVer}
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// TagName renders the version back into a tag of the given release train.
func (v *Version) TagName(prefix string) string {
	return prefix + v.Version.String()
}

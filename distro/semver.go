package distro

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type Bump string

const (
	Patch Bump = "patch"
	Minor Bump = "minor"
	Major Bump = "major"
)

func ParseBump(text string) (Bump, error) {
	switch bump := Bump(strings.ToLower(strings.TrimSpace(text))); bump {
	case Patch, Minor, Major:
		return bump, nil
	}
	return "", fmt.Errorf("bump must be one of patch, minor or major, not %q", text)
}

// Apply returns version incremented by the bump, prerelease and metadata dropped.
func (it Bump) Apply(version string) (string, error) {
	current, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("version %q: %w", version, err)
	}
	var next semver.Version
	switch it {
	case Patch:
		next = current.IncPatch()
	case Minor:
		next = current.IncMinor()
	case Major:
		next = current.IncMajor()
	default:
		return "", fmt.Errorf("unknown bump %q", string(it))
	}
	return next.String(), nil
}

// Caret is the dependency range a consumer should declare for version.
func Caret(version string) string {
	return "^" + version
}

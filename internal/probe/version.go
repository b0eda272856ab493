package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// ErrUnsupportedRuntime is returned when Node.js is missing or too old.
var ErrUnsupportedRuntime = errors.New("unsupported Node.js version")

// VersionCheck is the outcome of comparing a runtime version to a minimum.
type VersionCheck struct {
	Valid    bool
	Current  string
	Required string
}

// ValidateRuntimeVersion reports whether current is at least required.
// Versions are compared major, then minor, then patch; equality is valid.
// A leading "v" is tolerated and missing components count as zero.
// An unparseable current version is invalid.
func ValidateRuntimeVersion(current, required string) VersionCheck {
	check := VersionCheck{Current: current, Required: required}

	cv, err := parseVersion(current)
	if err != nil {
		return check
	}
	rv, err := parseVersion(required)
	if err != nil {
		return check
	}

	check.Valid = compareTriple(cv, rv) >= 0
	return check
}

// compareTriple compares only the numeric release triple, so pre-release
// and build metadata on a Node.js build never make it "older" than its release.
func compareTriple(a, b *semver.Version) int {
	pairs := [][2]uint64{
		{a.Major(), b.Major()},
		{a.Minor(), b.Minor()},
		{a.Patch(), b.Patch()},
	}
	for _, p := range pairs {
		switch {
		case p[0] > p[1]:
			return 1
		case p[0] < p[1]:
			return -1
		}
	}
	return 0
}

// parseVersion strips a leading "v" and parses the version string leniently.
func parseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}

// RuntimeVersion returns the Node.js version reported by `node --version`.
func RuntimeVersion(ctx context.Context, r shell.Runner) (string, error) {
	out, err := shell.Check(ctx, r, "", "node", "--version")
	if err != nil {
		return "", fmt.Errorf("%w: Node.js not found: %v", ErrUnsupportedRuntime, err)
	}
	v := strings.TrimSpace(out.Stdout)
	if v == "" {
		return "", fmt.Errorf("%w: node --version printed nothing", ErrUnsupportedRuntime)
	}
	return strings.TrimPrefix(v, "v"), nil
}

// Package version parses and renders the semantic version a release is cut for,
// and derives the names that hang off it: the release branch, the tag, and the
// container image aliases.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LatestAlias is the floating image alias every release claims.
const LatestAlias = "latest"

// Version is an immutable semantic version. The zero value is invalid; obtain
// one through Parse.
type Version struct {
	v *semver.Version
}

// InvalidVersionError reports input that is not a strict semantic version.
type InvalidVersionError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Parse accepts MAJOR.MINOR.PATCH[-pre][+build] with an optional leading "v".
// Shorthand forms such as "1.4" are rejected.
func Parse(input string) (Version, error) {
	if input == "" {
		return Version{}, &InvalidVersionError{Input: input, Reason: "empty"}
	}
	s := strings.TrimPrefix(input, "v")
	if strings.TrimSpace(s) != s {
		return Version{}, &InvalidVersionError{Input: input, Reason: "surrounding whitespace"}
	}
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, &InvalidVersionError{Input: input, Reason: err.Error()}
	}
	return Version{v: sv}, nil
}

// MustParse is Parse for constants in tests and defaults. It panics on error.
func MustParse(input string) Version {
	v, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was not produced by Parse.
func (v Version) IsZero() bool { return v.v == nil }

// Major returns the major component.
func (v Version) Major() uint64 { return v.v.Major() }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.v.Minor() }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.v.Patch() }

// Prerelease returns the prerelease identifiers without the leading "-".
func (v Version) Prerelease() string { return v.v.Prerelease() }

// Metadata returns the build metadata without the leading "+".
func (v Version) Metadata() string { return v.v.Metadata() }

// String renders the canonical MAJOR.MINOR.PATCH[-pre][+build] form, without
// a "v" prefix. The result always parses back to an equal Version.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Tag is the release tag name, "v<version>".
func (v Version) Tag() string { return "v" + v.String() }

// Branch is the release branch name, "release/<version>".
func (v Version) Branch() string { return "release/" + v.String() }

// Compare orders by semantic-version precedence; build metadata is ignored.
func (v Version) Compare(o Version) int { return v.v.Compare(o.v) }

// Equal reports precedence equality plus identical build metadata.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0 && v.Metadata() == o.Metadata()
}

// TagAliases returns the image tags for v in application order: the exact
// version, MAJOR.MINOR, MAJOR when the major version is non-zero, then latest.
// Pre-1.0 releases never claim a bare major alias.
func TagAliases(v Version) []string {
	aliases := []string{
		v.String(),
		fmt.Sprintf("%d.%d", v.Major(), v.Minor()),
	}
	if v.Major() != 0 {
		aliases = append(aliases, fmt.Sprintf("%d", v.Major()))
	}
	return append(aliases, LatestAlias)
}

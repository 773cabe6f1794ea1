package version

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// NotNewerError reports a release version that does not advance past the
// newest existing release tag.
type NotNewerError struct {
	Version string
	Latest  string
}

// Error implements the error interface.
func (e *NotNewerError) Error() string {
	return fmt.Sprintf("version %s must be greater than latest release %s", e.Version, e.Latest)
}

// LatestTag returns the highest "v"-prefixed semantic version among tags.
// Tags that are not valid versions are ignored.
func LatestTag(tags []string) (string, bool) {
	latest := ""
	for _, t := range tags {
		if !semver.IsValid(t) {
			continue
		}
		if latest == "" || semver.Compare(t, latest) > 0 {
			latest = t
		}
	}
	return latest, latest != ""
}

// CheckNewer returns a NotNewerError unless v is strictly greater than every
// release tag in tags.
func CheckNewer(v Version, tags []string) error {
	latest, ok := LatestTag(tags)
	if !ok {
		return nil
	}
	if semver.Compare(v.Tag(), latest) <= 0 {
		return &NotNewerError{Version: v.Tag(), Latest: latest}
	}
	return nil
}

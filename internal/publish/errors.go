package publish

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoToken indicates no hosting API token is configured.
	ErrNoToken = errors.New("no GitHub token configured (set GITHUB_PERSONAL_ACCESS_TOKEN or publish.token)")

	// ErrInvalidRepository indicates the repository reference is not "owner/name".
	ErrInvalidRepository = errors.New("repository must be owner/name")
)

// PublishError reports a release that was not fully published. When
// Release is set the draft exists remotely with only the Uploaded assets
// attached; it is not cleaned up or retried.
type PublishError struct {
	Tag      string
	Release  string   // Draft release URL, empty if the draft was never created
	Uploaded []string // Asset names attached before the failure
	Missing  []string // Asset names not attached
	Err      error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if e.Release == "" {
		return fmt.Sprintf("publishing %s: creating draft release: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("publishing %s: draft %s is missing %d asset(s) [%s]: %v",
		e.Tag, e.Release, len(e.Missing), strings.Join(e.Missing, ", "), e.Err)
}

// Unwrap returns the underlying error.
func (e *PublishError) Unwrap() error { return e.Err }

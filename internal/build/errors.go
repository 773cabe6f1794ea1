package build

import "fmt"

// BuildError reports a failed build step. It aborts remaining builds;
// images already built stay in the local store.
type BuildError struct {
	Component string
	Step      string // "cross-build", "image", "tag", "lockfile", "package"
	Err       error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %s: %v", e.Component, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error { return e.Err }

package manifest

import (
	"errors"
	"fmt"
)

// Sentinel reasons wrapped by ManifestError.
var (
	// ErrMissingSection indicates a required table or key is absent.
	ErrMissingSection = errors.New("missing required section")

	// ErrMalformed indicates the document does not decode or has an unexpected shape.
	ErrMalformed = errors.New("malformed manifest")
)

// ManifestError reports a manifest that is missing, malformed or lacks a
// required section. It is fatal for the run; the operator restores the
// working copy and restarts.
type ManifestError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *ManifestError) Unwrap() error { return e.Err }

func missing(path, what string) *ManifestError {
	return &ManifestError{Path: path, Reason: what, Err: ErrMissingSection}
}

func malformed(path, what string, err error) *ManifestError {
	if err == nil {
		err = ErrMalformed
	} else {
		err = fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &ManifestError{Path: path, Reason: what, Err: err}
}

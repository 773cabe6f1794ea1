package pipeline

import (
	"errors"
	"fmt"
)

// ErrAborted indicates the operator declined the confirmation prompt.
// Nothing has been mutated when it is returned.
var ErrAborted = errors.New("release aborted by operator")

// StageError reports the stage a run failed in and the last step it
// completed, which is where an operator picks up recovery.
type StageError struct {
	Stage    string // e.g. "validate", "history", "images"
	LastStep string // Last completed plan step, "" if none
	Err      error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.LastStep == "" {
		return fmt.Sprintf("release failed in %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("release failed in %s after %s: %v", e.Stage, e.LastStep, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }

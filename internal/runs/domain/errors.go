package domain

import "fmt"

// RunNotFoundError indicates no run with the given GUID is journaled.
type RunNotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run not found: guid=%q", e.GUID)
}

// StepOutOfOrderError indicates a step was recorded other than the next
// planned one.
type StepOutOfOrderError struct {
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *StepOutOfOrderError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("step %q recorded after the plan completed", e.Got)
	}
	return fmt.Sprintf("step %q recorded out of order: expected %q", e.Got, e.Expected)
}

// RunFinishedError indicates a change to a run that already finished.
type RunFinishedError struct {
	GUID  string
	State RunState
}

// Error implements the error interface.
func (e *RunFinishedError) Error() string {
	return fmt.Sprintf("run %q already %s", e.GUID, e.State)
}

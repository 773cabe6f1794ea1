// Package domain holds the release run journal: one Run per invocation of
// the pipeline and one Transition per completed step.
package domain

import (
	"slices"
	"time"
)

// RunState is the lifecycle state of a run.
type RunState string

const (
	// RunRunning means the pipeline has not finished.
	RunRunning RunState = "running"
	// RunSucceeded means every planned step completed.
	RunSucceeded RunState = "succeeded"
	// RunFailed means a step failed and the run halted.
	RunFailed RunState = "failed"
)

// Run is one release attempt against a repository.
type Run struct {
	id         int64
	guid       string
	version    string
	repoRoot   string
	plan       []string
	completed  int
	state      RunState
	failedStep string
	failure    string
	startedAt  time.Time
	updatedAt  time.Time
	finishedAt *time.Time
}

// NewRun creates a running run with the given step plan.
func NewRun(guid, version, repoRoot string, plan []string, now time.Time) *Run {
	return &Run{
		guid:      guid,
		version:   version,
		repoRoot:  repoRoot,
		plan:      slices.Clone(plan),
		state:     RunRunning,
		startedAt: now,
		updatedAt: now,
	}
}

// ReconstituteRun rebuilds a Run from storage.
func ReconstituteRun(
	id int64,
	guid, version, repoRoot string,
	plan []string,
	completed int,
	state RunState,
	failedStep, failure string,
	startedAt, updatedAt time.Time,
	finishedAt *time.Time,
) *Run {
	return &Run{
		id:         id,
		guid:       guid,
		version:    version,
		repoRoot:   repoRoot,
		plan:       plan,
		completed:  completed,
		state:      state,
		failedStep: failedStep,
		failure:    failure,
		startedAt:  startedAt,
		updatedAt:  updatedAt,
		finishedAt: finishedAt,
	}
}

func (r *Run) ID() int64              { return r.id }
func (r *Run) GUID() string           { return r.guid }
func (r *Run) Version() string        { return r.version }
func (r *Run) RepoRoot() string       { return r.repoRoot }
func (r *Run) Plan() []string         { return slices.Clone(r.plan) }
func (r *Run) Completed() int         { return r.completed }
func (r *Run) State() RunState        { return r.state }
func (r *Run) FailedStep() string     { return r.failedStep }
func (r *Run) Failure() string        { return r.failure }
func (r *Run) StartedAt() time.Time   { return r.startedAt }
func (r *Run) UpdatedAt() time.Time   { return r.updatedAt }
func (r *Run) FinishedAt() *time.Time { return r.finishedAt }

// SetID is called by the repository after the first insert.
func (r *Run) SetID(id int64) { r.id = id }

// LastStep returns the most recently completed step, or "" if none.
func (r *Run) LastStep() string {
	if r.completed == 0 {
		return ""
	}
	return r.plan[r.completed-1]
}

// Remaining returns the planned steps not yet completed.
func (r *Run) Remaining() []string {
	return slices.Clone(r.plan[r.completed:])
}

// Advance records step as completed. Steps complete strictly in plan order.
func (r *Run) Advance(step, ref string, now time.Time) (Transition, error) {
	if r.state != RunRunning {
		return Transition{}, &RunFinishedError{GUID: r.guid, State: r.state}
	}
	if r.completed >= len(r.plan) || r.plan[r.completed] != step {
		expected := ""
		if r.completed < len(r.plan) {
			expected = r.plan[r.completed]
		}
		return Transition{}, &StepOutOfOrderError{Expected: expected, Got: step}
	}
	r.completed++
	r.updatedAt = now
	return Transition{RunID: r.id, Seq: r.completed, Step: step, Ref: ref, At: now}, nil
}

// Fail halts the run at step.
func (r *Run) Fail(step string, cause error, now time.Time) error {
	if r.state != RunRunning {
		return &RunFinishedError{GUID: r.guid, State: r.state}
	}
	r.state = RunFailed
	r.failedStep = step
	if cause != nil {
		r.failure = cause.Error()
	}
	r.updatedAt = now
	r.finishedAt = &now
	return nil
}

// Succeed marks the run finished. Every planned step must be complete.
func (r *Run) Succeed(now time.Time) error {
	if r.state != RunRunning {
		return &RunFinishedError{GUID: r.guid, State: r.state}
	}
	if r.completed != len(r.plan) {
		return &StepOutOfOrderError{Expected: r.plan[r.completed], Got: "finish"}
	}
	r.state = RunSucceeded
	r.updatedAt = now
	r.finishedAt = &now
	return nil
}

// Transition is one completed step of a run.
type Transition struct {
	RunID int64
	Seq   int    // 1-based position in the plan
	Step  string // e.g. "version_committed(kiln_lib)"
	Ref   string // Commit id, image reference or artifact path, if any
	At    time.Time
}

// RunRepository persists runs and their transitions.
type RunRepository interface {
	// Save inserts a new run (ID == 0) or updates an existing one.
	Save(run *Run) error
	// AppendTransition records a completed step.
	AppendTransition(tr Transition) error
	// FindByGUID returns the run with guid or a RunNotFoundError.
	FindByGUID(guid string) (*Run, error)
	// Latest returns up to limit runs, newest first.
	Latest(limit int) ([]*Run, error)
	// Transitions returns a run's transitions in order.
	Transitions(runID int64) ([]Transition, error)
}

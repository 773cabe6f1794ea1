package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/simplybusiness/kiln-release/internal/runs/domain"
)

// runModel is a row of the runs table. Times are Unix seconds.
type runModel struct {
	ID         int64
	GUID       string
	Version    string
	RepoRoot   string
	Plan       string // JSON array of step names
	Completed  int
	State      string
	FailedStep *string
	Failure    *string
	StartedAt  int64
	UpdatedAt  int64
	FinishedAt *int64
}

func toRunModel(r *domain.Run) (*runModel, error) {
	plan, err := json.Marshal(r.Plan())
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	m := &runModel{
		ID:        r.ID(),
		GUID:      r.GUID(),
		Version:   r.Version(),
		RepoRoot:  r.RepoRoot(),
		Plan:      string(plan),
		Completed: r.Completed(),
		State:     string(r.State()),
		StartedAt: r.StartedAt().Unix(),
		UpdatedAt: r.UpdatedAt().Unix(),
	}
	if s := r.FailedStep(); s != "" {
		m.FailedStep = &s
	}
	if s := r.Failure(); s != "" {
		m.Failure = &s
	}
	if t := r.FinishedAt(); t != nil {
		ts := t.Unix()
		m.FinishedAt = &ts
	}
	return m, nil
}

func (m *runModel) toDomain() (*domain.Run, error) {
	var plan []string
	if err := json.Unmarshal([]byte(m.Plan), &plan); err != nil {
		return nil, fmt.Errorf("decoding plan of run %s: %w", m.GUID, err)
	}
	var failedStep, failure string
	if m.FailedStep != nil {
		failedStep = *m.FailedStep
	}
	if m.Failure != nil {
		failure = *m.Failure
	}
	var finishedAt *time.Time
	if m.FinishedAt != nil {
		t := time.Unix(*m.FinishedAt, 0)
		finishedAt = &t
	}
	return domain.ReconstituteRun(
		m.ID,
		m.GUID,
		m.Version,
		m.RepoRoot,
		plan,
		m.Completed,
		domain.RunState(m.State),
		failedStep,
		failure,
		time.Unix(m.StartedAt, 0),
		time.Unix(m.UpdatedAt, 0),
		finishedAt,
	), nil
}

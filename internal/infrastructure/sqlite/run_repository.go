package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simplybusiness/kiln-release/internal/runs/domain"
)

type runRepository struct {
	db *sql.DB
}

var _ domain.RunRepository = (*runRepository)(nil)

const runColumns = `id, guid, version, repo_root, plan, completed, state, failed_step, failure, started_at, updated_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*runModel, error) {
	var m runModel
	err := s.Scan(&m.ID, &m.GUID, &m.Version, &m.RepoRoot, &m.Plan, &m.Completed, &m.State,
		&m.FailedStep, &m.Failure, &m.StartedAt, &m.UpdatedAt, &m.FinishedAt)
	return &m, err
}

// Save inserts a run with ID 0 and sets its ID, otherwise updates it.
func (r *runRepository) Save(run *domain.Run) error {
	m, err := toRunModel(run)
	if err != nil {
		return err
	}

	if run.ID() == 0 {
		res, err := r.db.Exec(
			`INSERT INTO runs (guid, version, repo_root, plan, completed, state, failed_step, failure, started_at, updated_at, finished_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.GUID, m.Version, m.RepoRoot, m.Plan, m.Completed, m.State, m.FailedStep, m.Failure, m.StartedAt, m.UpdatedAt, m.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting run: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading run id: %w", err)
		}
		run.SetID(id)
		return nil
	}

	res, err := r.db.Exec(
		`UPDATE runs SET completed = ?, state = ?, failed_step = ?, failure = ?, updated_at = ?, finished_at = ? WHERE id = ?`,
		m.Completed, m.State, m.FailedStep, m.Failure, m.UpdatedAt, m.FinishedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.RunNotFoundError{GUID: m.GUID}
	}
	return nil
}

// AppendTransition records one completed step.
func (r *runRepository) AppendTransition(tr domain.Transition) error {
	var ref *string
	if tr.Ref != "" {
		ref = &tr.Ref
	}
	_, err := r.db.Exec(
		`INSERT INTO transitions (run_id, seq, step, ref, at) VALUES (?, ?, ?, ?, ?)`,
		tr.RunID, tr.Seq, tr.Step, ref, tr.At.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording step %s: %w", tr.Step, err)
	}
	return nil
}

// FindByGUID returns the run with guid.
func (r *runRepository) FindByGUID(guid string) (*domain.Run, error) {
	m, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE guid = ?`, guid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RunNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}
	return m.toDomain()
}

// Latest returns up to limit runs, newest first.
func (r *runRepository) Latest(limit int) ([]*domain.Run, error) {
	rows, err := r.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*domain.Run
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Transitions returns a run's steps in plan order.
func (r *runRepository) Transitions(runID int64) ([]domain.Transition, error) {
	rows, err := r.db.Query(`SELECT run_id, seq, step, ref, at FROM transitions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Transition
	for rows.Next() {
		var (
			tr  domain.Transition
			ref sql.NullString
			at  int64
		)
		if err := rows.Scan(&tr.RunID, &tr.Seq, &tr.Step, &ref, &at); err != nil {
			return nil, fmt.Errorf("scanning transition: %w", err)
		}
		tr.Ref = ref.String
		tr.At = time.Unix(at, 0)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	return out, nil
}

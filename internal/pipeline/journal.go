package pipeline

import (
	"time"

	"github.com/simplybusiness/kiln-release/internal/log"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
)

// journal mirrors a run's progress into the run repository. Recording
// failures are logged and never fail the release.
type journal struct {
	repo rundomain.RunRepository
	run  *rundomain.Run
	now  func() time.Time
}

func startJournal(repo rundomain.RunRepository, guid, version, root string, plan []string, now func() time.Time) *journal {
	j := &journal{repo: repo, run: rundomain.NewRun(guid, version, root, plan, now()), now: now}
	if repo == nil {
		return j
	}
	if err := repo.Save(j.run); err != nil {
		log.Warn(log.CatDB, "Run journal unavailable, continuing without it", "run_id", guid, "error", err)
		j.repo = nil
	}
	return j
}

func (j *journal) advance(step, ref string) {
	tr, err := j.run.Advance(step, ref, j.now())
	if err != nil {
		log.Warn(log.CatPipeline, "Journal rejected step", "run_id", j.run.GUID(), "step", step, "error", err)
		return
	}
	log.Info(log.CatPipeline, "Step recorded", "run_id", j.run.GUID(), "step", step, "seq", tr.Seq, "ref", ref)
	if j.repo == nil {
		return
	}
	if err := j.repo.AppendTransition(tr); err != nil {
		log.Warn(log.CatDB, "Could not record transition", "run_id", j.run.GUID(), "step", step, "error", err)
		return
	}
	j.save()
}

// lastStep is safe to call before the journal starts.
func (j *journal) lastStep() string {
	if j == nil {
		return ""
	}
	return j.run.LastStep()
}

// fail marks the next planned step as the one that failed.
func (j *journal) fail(cause error) {
	step := ""
	if rem := j.run.Remaining(); len(rem) > 0 {
		step = rem[0]
	}
	if err := j.run.Fail(step, cause, j.now()); err != nil {
		log.Warn(log.CatPipeline, "Journal rejected failure", "run_id", j.run.GUID(), "error", err)
		return
	}
	j.save()
}

func (j *journal) succeed() {
	if err := j.run.Succeed(j.now()); err != nil {
		log.Warn(log.CatPipeline, "Journal rejected completion", "run_id", j.run.GUID(), "error", err)
		return
	}
	j.save()
}

func (j *journal) save() {
	if j.repo == nil {
		return
	}
	if err := j.repo.Save(j.run); err != nil {
		log.Warn(log.CatDB, "Could not update run", "run_id", j.run.GUID(), "error", err)
	}
}

package application

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ProtonMail/go-crypto/openpgp"

	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/version"
)

// State is a position in the release history state machine.
type State int

const (
	StateClean State = iota
	StateBranchCreated
	StateChangelogCommitted
	StateDependencyCommitted
	StateVersionCommitted
	StateLibraryPushed
	StateCliVersionCommitted
	StateTagged
	StateBranchPushed
	StatePushed
)

var stateNames = map[State]string{
	StateClean:               "clean",
	StateBranchCreated:       "branch_created",
	StateChangelogCommitted:  "changelog_committed",
	StateDependencyCommitted: "dependency_committed",
	StateVersionCommitted:    "version_committed",
	StateLibraryPushed:       "library_pushed",
	StateCliVersionCommitted: "cli_version_committed",
	StateTagged:              "tagged",
	StateBranchPushed:        "branch_pushed",
	StatePushed:              "pushed",
}

// String returns the snake_case name recorded in logs and the run journal.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// isCommit reports whether reaching s requires a commit.
func (s State) isCommit() bool {
	switch s {
	case StateChangelogCommitted, StateDependencyCommitted, StateVersionCommitted, StateCliVersionCommitted:
		return true
	}
	return false
}

// Step is one planned transition. Component is set for per-component states.
type Step struct {
	State     State
	Component string
}

// String renders "state" or "state(component)".
func (s Step) String() string {
	if s.Component == "" {
		return s.State.String()
	}
	return s.State.String() + "(" + s.Component + ")"
}

// PlanLayout names the components a release history touches.
type PlanLayout struct {
	Library          string   // Shared library, versioned first
	Services         []string // Dependents, pinned then versioned in this order
	CLI              string   // Command-line component, versioned last
	PushLibraryEarly bool     // Push the branch after the library commit
}

// HistoryPlan returns the ordered steps for a release with the given layout.
// The order is fixed before the first mutation and never changes mid-run.
func HistoryPlan(layout PlanLayout) []Step {
	plan := []Step{
		{State: StateBranchCreated},
		{State: StateChangelogCommitted},
		{State: StateVersionCommitted, Component: layout.Library},
	}
	if layout.PushLibraryEarly {
		plan = append(plan, Step{State: StateLibraryPushed})
	}
	for _, svc := range layout.Services {
		plan = append(plan,
			Step{State: StateDependencyCommitted, Component: svc},
			Step{State: StateVersionCommitted, Component: svc},
		)
	}
	return append(plan,
		Step{State: StateCliVersionCommitted, Component: layout.CLI},
		Step{State: StateTagged},
		Step{State: StateBranchPushed},
		Step{State: StatePushed},
	)
}

// CommitMessage returns the commit subject for a commit step.
func CommitMessage(step Step, v version.Version, library string) string {
	switch step.State {
	case StateChangelogCommitted:
		return fmt.Sprintf("Docs: Update CHANGELOG.md for %s release.", v)
	case StateDependencyCommitted:
		return fmt.Sprintf("%s: Update %s dependency to %s", commitScope(step.Component), library, v)
	case StateVersionCommitted:
		return fmt.Sprintf("%s: Update component version to %s", commitScope(step.Component), v)
	case StateCliVersionCommitted:
		return fmt.Sprintf("CLI: Update component version to %s", v)
	default:
		return ""
	}
}

// commitScope upper-cases the first letter and lower-cases the rest, so
// "data-collector" becomes "Data-collector".
func commitScope(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// History drives the release branch through its planned steps. Transitions
// are forward-only: an operation for any step other than the next planned
// one fails with ErrOutOfOrder before touching the repository.
type History struct {
	repo    Repository
	version version.Version
	remote  string
	library string
	plan    []Step
	done    int

	onAdvance func(Step, domain.CommitID)
}

// NewHistory creates a history builder positioned at StateClean.
func NewHistory(repo Repository, v version.Version, remote string, layout PlanLayout) *History {
	return &History{
		repo:    repo,
		version: v,
		remote:  remote,
		library: layout.Library,
		plan:    HistoryPlan(layout),
	}
}

// OnAdvance registers fn to be called after each completed step. The commit
// is the one created by the step, or the branch head for non-commit steps.
func (h *History) OnAdvance(fn func(Step, domain.CommitID)) {
	h.onAdvance = fn
}

// Plan returns a copy of the full step plan.
func (h *History) Plan() []Step {
	return append([]Step(nil), h.plan...)
}

// Current returns the last completed step, or a StateClean step if none.
func (h *History) Current() Step {
	if h.done == 0 {
		return Step{State: StateClean}
	}
	return h.plan[h.done-1]
}

// Next returns the next planned step. ok is false once the plan is complete.
func (h *History) Next() (Step, bool) {
	if h.done >= len(h.plan) {
		return Step{}, false
	}
	return h.plan[h.done], true
}

// Remaining returns the steps not yet completed.
func (h *History) Remaining() []Step {
	return append([]Step(nil), h.plan[h.done:]...)
}

// Branch returns the release branch name.
func (h *History) Branch() string {
	return h.version.Branch()
}

// expect fails unless step is the next planned step.
func (h *History) expect(step Step) error {
	next, ok := h.Next()
	if !ok {
		return fmt.Errorf("%w: %s requested after the plan completed", domain.ErrOutOfOrder, step)
	}
	if next != step {
		return fmt.Errorf("%w: %s requested, next planned step is %s", domain.ErrOutOfOrder, step, next)
	}
	return nil
}

func (h *History) complete(step Step, commit domain.CommitID) {
	h.done++
	log.Info(log.CatGit, "Release step complete",
		"step", step.State.String(),
		"component", step.Component,
		"commit", commit.Short())
	if h.onAdvance != nil {
		h.onAdvance(step, commit)
	}
}

// CreateBranch creates the release branch at the current head and checks it
// out. Fails with ErrBranchExists if the name is taken.
func (h *History) CreateBranch() (domain.CommitID, error) {
	step := Step{State: StateBranchCreated}
	if err := h.expect(step); err != nil {
		return "", err
	}
	branch := h.Branch()

	head, err := h.repo.CurrentBranchHead()
	if err != nil {
		return "", &domain.GitOperationError{Op: "resolve head", Err: err}
	}
	exists, err := h.repo.BranchExists(branch)
	if err != nil {
		return "", &domain.GitOperationError{Op: "create branch", Ref: branch, Err: err}
	}
	if exists {
		return "", &domain.GitOperationError{Op: "create branch", Ref: branch, Err: domain.ErrBranchExists}
	}
	if err := h.repo.CreateBranch(branch, head); err != nil {
		return "", &domain.GitOperationError{Op: "create branch", Ref: branch, Err: err}
	}
	if err := h.repo.Checkout(branch); err != nil {
		return "", &domain.GitOperationError{Op: "checkout", Ref: branch, Err: err}
	}

	h.complete(step, head)
	return head, nil
}

// Commit stages exactly paths and commits them for step with the planned
// message. Intermediate commits are never signed.
func (h *History) Commit(step Step, paths ...string) (domain.CommitInfo, error) {
	if !step.State.isCommit() {
		return domain.CommitInfo{}, fmt.Errorf("%s is not a commit step", step)
	}
	if err := h.expect(step); err != nil {
		return domain.CommitInfo{}, err
	}
	if len(paths) == 0 {
		return domain.CommitInfo{}, &domain.GitOperationError{Op: "stage", Ref: step.String(), Err: domain.ErrNothingStaged}
	}
	if err := h.repo.Stage(paths...); err != nil {
		return domain.CommitInfo{}, &domain.GitOperationError{Op: "stage", Ref: strings.Join(paths, ","), Err: err}
	}

	msg := CommitMessage(step, h.version, h.library)
	info, err := h.repo.Commit(msg, nil)
	if err != nil {
		return domain.CommitInfo{}, &domain.GitOperationError{Op: "commit", Ref: h.Branch(), Err: err}
	}

	log.Debug(log.CatGit, "Committed", "subject", msg, "paths", paths, "commit", info.ID.Short())
	h.complete(step, info.ID)
	return info, nil
}

// PushLibrary pushes the release branch after the library version commit so
// dependents can resolve the pinned revision.
func (h *History) PushLibrary(ctx context.Context) error {
	return h.pushBranch(ctx, Step{State: StateLibraryPushed})
}

// Tag creates the annotated release tag at the branch head, signed by signer.
func (h *History) Tag(signer *openpgp.Entity) (domain.CommitID, error) {
	step := Step{State: StateTagged}
	if err := h.expect(step); err != nil {
		return "", err
	}
	if signer == nil {
		return "", &domain.GitOperationError{Op: "tag", Ref: h.version.Tag(), Err: domain.ErrNoSigningKey}
	}

	head, err := h.repo.CurrentBranchHead()
	if err != nil {
		return "", &domain.GitOperationError{Op: "resolve head", Err: err}
	}
	tag := h.version.Tag()
	if err := h.repo.CreateTag(tag, tag, head, signer); err != nil {
		return "", &domain.GitOperationError{Op: "tag", Ref: tag, Err: err}
	}

	h.complete(step, head)
	return head, nil
}

// PushBranch pushes the final release branch ref.
func (h *History) PushBranch(ctx context.Context) error {
	return h.pushBranch(ctx, Step{State: StateBranchPushed})
}

// PushTag pushes the release tag. A failure here leaves the branch visible
// on the remote without the tag; it is reported, not retried.
func (h *History) PushTag(ctx context.Context) error {
	step := Step{State: StatePushed}
	if err := h.expect(step); err != nil {
		return err
	}
	ref := "refs/tags/" + h.version.Tag()
	if err := h.repo.Push(ctx, h.remote, ref+":"+ref); err != nil {
		return &domain.GitOperationError{Op: "push", Ref: ref, Err: err}
	}
	h.complete(step, "")
	return nil
}

func (h *History) pushBranch(ctx context.Context, step Step) error {
	if err := h.expect(step); err != nil {
		return err
	}
	head, err := h.repo.CurrentBranchHead()
	if err != nil {
		return &domain.GitOperationError{Op: "resolve head", Err: err}
	}
	ref := "refs/heads/" + h.Branch()
	if err := h.repo.Push(ctx, h.remote, ref+":"+ref); err != nil {
		return &domain.GitOperationError{Op: "push", Ref: ref, Err: err}
	}
	h.complete(step, head)
	return nil
}

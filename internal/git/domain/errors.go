package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Git-specific errors for release operations.
var (
	// ErrNotGitRepo indicates the directory is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBranchExists indicates the release branch name is already taken.
	ErrBranchExists = errors.New("branch already exists")

	// ErrDetachedHead indicates HEAD is not pointing to a branch.
	ErrDetachedHead = errors.New("detached HEAD state")

	// ErrNoSigningKey indicates no signing identity is configured.
	ErrNoSigningKey = errors.New("no signing key configured (set user.signingkey or signing.key_id)")

	// ErrOutOfOrder indicates a history step was attempted out of its planned order.
	ErrOutOfOrder = errors.New("release step out of order")

	// ErrNothingStaged indicates a commit step found no changes to record.
	ErrNothingStaged = errors.New("nothing staged for commit")
)

// DirtyWorkingCopyError indicates the working copy has changes outside the
// allow-list. Nothing has been mutated when it is returned.
type DirtyWorkingCopyError struct {
	Staged    []string // Any staged path fails the check
	Offending []string // Unstaged or untracked paths outside the allow-list
}

// Error implements the error interface.
func (e *DirtyWorkingCopyError) Error() string {
	var parts []string
	if len(e.Staged) > 0 {
		parts = append(parts, "staged: "+strings.Join(e.Staged, ", "))
	}
	if len(e.Offending) > 0 {
		parts = append(parts, "not allowed: "+strings.Join(e.Offending, ", "))
	}
	return "working copy contains unexpected changes (" + strings.Join(parts, "; ") + ")"
}

// GitOperationError wraps a failed branch, commit, tag or push. Remote state
// may already be partially mutated when Op is a push.
type GitOperationError struct {
	Op  string // e.g. "create branch", "commit", "push"
	Ref string // Branch, tag or commit the operation targeted
	Err error
}

// Error implements the error interface.
func (e *GitOperationError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("git %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("git %s %s: %v", e.Op, e.Ref, e.Err)
}

// Unwrap returns the underlying error.
func (e *GitOperationError) Unwrap() error { return e.Err }

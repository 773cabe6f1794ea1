// Package domain provides value types for the version-control collaborator.
package domain

import "time"

// CommitID is a full 40-character commit hash in hex.
type CommitID string

// Short returns the 7-character abbreviation.
func (c CommitID) Short() string {
	if len(c) <= 7 {
		return string(c)
	}
	return string(c[:7])
}

// CommitInfo holds information about a commit created during a release run.
type CommitInfo struct {
	ID      CommitID  // Full commit hash
	Parent  CommitID  // First parent; empty for a root commit
	Tree    string    // Resulting tree hash
	Subject string    // First line of the commit message
	Author  string    // "Name <email>"
	Date    time.Time // Commit timestamp
}

// Status partitions the working copy into the three sets the guard inspects.
// Paths are slash-separated and relative to the repository root.
type Status struct {
	Staged    []string // Changes in the index relative to HEAD
	Unstaged  []string // Tracked files modified in the working tree but not staged
	Untracked []string // Files not known to the index
}

// IsClean reports whether all three sets are empty.
func (s Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// HunkOp classifies a run of lines in a diff.
type HunkOp int

const (
	// HunkEqual is context present in both trees.
	HunkEqual HunkOp = iota
	// HunkAdd is lines present only in the after tree.
	HunkAdd
	// HunkDelete is lines present only in the before tree.
	HunkDelete
)

// String returns a human-readable representation of the HunkOp.
func (o HunkOp) String() string {
	switch o {
	case HunkEqual:
		return "equal"
	case HunkAdd:
		return "add"
	case HunkDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hunk is one contiguous run of lines with the same HunkOp, in diff order.
type Hunk struct {
	Path  string   // File the hunk belongs to
	Op    HunkOp   // Whether the lines were kept, added or removed
	Lines []string // Lines without their trailing newline
}

// Signature identifies the committer or tagger.
type Signature struct {
	Name  string
	Email string
}

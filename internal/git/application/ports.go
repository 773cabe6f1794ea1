// Package application defines the version-control port and the release logic
// that runs on top of it: the working-copy guard, the changelog extractor and
// the history builder.
package application

import (
	"context"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"

	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
)

// Repository is an open repository handle with an explicit current branch.
// Every release stage receives the same handle rather than reading ambient
// process state.
type Repository interface {
	// Root returns the absolute path of the working tree.
	Root() string

	// CurrentBranch returns the short name of the checked-out branch.
	// Returns ErrDetachedHead when HEAD does not point to a branch.
	CurrentBranch() (string, error)
	// CurrentBranchHead returns the commit HEAD resolves to.
	CurrentBranchHead() (domain.CommitID, error)
	BranchExists(name string) (bool, error)
	// CreateBranch creates name at start. Returns ErrBranchExists if taken.
	CreateBranch(name string, start domain.CommitID) error
	// Checkout points HEAD at the named branch without touching the working tree.
	Checkout(name string) error

	// Status partitions the working copy into staged, unstaged and untracked paths.
	Status() (domain.Status, error)
	// Stage adds exactly the given repo-relative paths to the index.
	Stage(paths ...string) error
	// Commit records the index as a new commit on the current branch.
	// Intermediate release commits pass nil for signer.
	Commit(message string, signer *openpgp.Entity) (domain.CommitInfo, error)
	// CommitInfo returns details of a single commit.
	CommitInfo(id domain.CommitID) (domain.CommitInfo, error)

	// DiffTree compares the trees of two commits for one path and returns its
	// hunks in diff order.
	DiffTree(before, after domain.CommitID, path string) ([]domain.Hunk, error)

	// CreateTag creates an annotated tag at target signed by signer.
	CreateTag(name, message string, target domain.CommitID, signer *openpgp.Entity) error
	// Tags lists the short names of all tags.
	Tags() ([]string, error)
	// Push transmits refspecs to the named remote. An up-to-date remote is not an error.
	Push(ctx context.Context, remote string, refspecs ...string) error
	// RemoteURL returns the first URL of the named remote, or "" if it does not exist.
	RemoteURL(name string) (string, error)

	// ConfigValue reads a key from the merged repository and global config.
	// Returns "" when unset.
	ConfigValue(section, key string) (string, error)
	// Signature returns the configured committer identity.
	Signature() (domain.Signature, error)

	// Archive writes an uncompressed tar of the commit's tree, with every
	// entry under prefix.
	Archive(id domain.CommitID, prefix string, w io.Writer) error
}

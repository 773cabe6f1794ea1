// Package infrastructure implements the version-control port on top of go-git.
package infrastructure

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/simplybusiness/kiln-release/internal/git/application"
	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/log"
)

// Compile-time check that Repository implements the port.
var _ application.Repository = (*Repository)(nil)

// Repository is a go-git backed repository handle.
type Repository struct {
	repo *git.Repository
	root string
	auth transport.AuthMethod
	now  func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithAuth sets the credentials used for push.
func WithAuth(auth transport.AuthMethod) Option {
	return func(r *Repository) { r.auth = auth }
}

// WithClock overrides the clock used for commit and tag timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// Discover opens the repository containing dir, searching parent directories.
func Discover(dir string, opts ...Option) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, domain.ErrNotGitRepo)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	r := &Repository{repo: repo, root: wt.Filesystem.Root(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	log.Debug(log.CatGit, "Opened repository", "root", r.root)
	return r, nil
}

// Root returns the absolute path of the working tree.
func (r *Repository) Root() string { return r.root }

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repository) CurrentBranch() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", domain.ErrDetachedHead
	}
	return ref.Name().Short(), nil
}

// CurrentBranchHead returns the commit HEAD resolves to.
func (r *Repository) CurrentBranchHead() (domain.CommitID, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return domain.CommitID(ref.Hash().String()), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repository) BranchExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateBranch creates name at start.
func (r *Repository) CreateBranch(name string, start domain.CommitID) error {
	exists, err := r.BranchExists(name)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrBranchExists
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(string(start)))
	return r.repo.Storer.SetReference(ref)
}

// Checkout points HEAD at the branch. The index and working tree are left as
// they are, so pending changelog edits carry over onto the new branch.
func (r *Repository) Checkout(name string) error {
	branch := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branch, false); err != nil {
		return fmt.Errorf("branch %s: %w", name, err)
	}
	return r.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branch))
}

// Status partitions the working copy into staged, unstaged and untracked paths.
func (r *Repository) Status() (domain.Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return domain.Status{}, err
	}
	st, err := wt.Status()
	if err != nil {
		return domain.Status{}, err
	}

	var out domain.Status
	for p, fs := range st {
		if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
			out.Untracked = append(out.Untracked, p)
			continue
		}
		if fs.Staging != git.Unmodified {
			out.Staged = append(out.Staged, p)
		}
		if fs.Worktree != git.Unmodified {
			out.Unstaged = append(out.Unstaged, p)
		}
	}
	sort.Strings(out.Staged)
	sort.Strings(out.Unstaged)
	sort.Strings(out.Untracked)
	return out, nil
}

// Stage adds exactly the given paths to the index.
func (r *Repository) Stage(paths ...string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return fmt.Errorf("staging %s: %w", p, err)
		}
	}
	return nil
}

// Commit records the index on the current branch.
func (r *Repository) Commit(message string, signer *openpgp.Entity) (domain.CommitInfo, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return domain.CommitInfo{}, err
	}
	sig, err := r.objectSignature()
	if err != nil {
		return domain.CommitInfo{}, err
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		SignKey:   signer,
	})
	if err != nil {
		return domain.CommitInfo{}, err
	}
	return r.CommitInfo(domain.CommitID(hash.String()))
}

// CommitInfo returns details of a single commit.
func (r *Repository) CommitInfo(id domain.CommitID) (domain.CommitInfo, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return domain.CommitInfo{}, fmt.Errorf("commit %s: %w", id.Short(), err)
	}
	info := domain.CommitInfo{
		ID:      domain.CommitID(c.Hash.String()),
		Tree:    c.TreeHash.String(),
		Subject: strings.SplitN(c.Message, "\n", 2)[0],
		Author:  fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
		Date:    c.Author.When,
	}
	if len(c.ParentHashes) > 0 {
		info.Parent = domain.CommitID(c.ParentHashes[0].String())
	}
	return info, nil
}

// DiffTree returns the hunks of path between the trees of two commits.
func (r *Repository) DiffTree(before, after domain.CommitID, path string) ([]domain.Hunk, error) {
	from, err := r.commitTree(before)
	if err != nil {
		return nil, err
	}
	to, err := r.commitTree(after)
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(from, to)
	if err != nil {
		return nil, err
	}

	var hunks []domain.Hunk
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		if name != path {
			continue
		}
		patch, err := ch.Patch()
		if err != nil {
			return nil, fmt.Errorf("computing patch for %s: %w", path, err)
		}
		for _, fp := range patch.FilePatches() {
			for _, chunk := range fp.Chunks() {
				hunks = append(hunks, domain.Hunk{
					Path:  path,
					Op:    hunkOp(chunk.Type()),
					Lines: splitLines(chunk.Content()),
				})
			}
		}
	}
	return hunks, nil
}

// CreateTag creates an annotated tag signed by signer.
func (r *Repository) CreateTag(name, message string, target domain.CommitID, signer *openpgp.Entity) error {
	sig, err := r.objectSignature()
	if err != nil {
		return err
	}
	_, err = r.repo.CreateTag(name, plumbing.NewHash(string(target)), &git.CreateTagOptions{
		Tagger:  sig,
		Message: message,
		SignKey: signer,
	})
	return err
}

// Tags lists the short names of all tags.
func (r *Repository) Tags() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, err
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	return names, err
}

// Push transmits refspecs to the named remote.
func (r *Repository) Push(ctx context.Context, remote string, refspecs ...string) error {
	specs := make([]config.RefSpec, 0, len(refspecs))
	for _, s := range refspecs {
		specs = append(specs, config.RefSpec(s))
	}
	log.Info(log.CatGit, "Pushing", "remote", remote, "refs", refspecs)
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Auth:       r.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// RemoteURL returns the first URL of the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// ConfigValue reads section.key from the repository config, falling back to
// the user's global config.
func (r *Repository) ConfigValue(section, key string) (string, error) {
	local, err := r.repo.Config()
	if err != nil {
		return "", err
	}
	if v := local.Raw.Section(section).Option(key); v != "" {
		return v, nil
	}
	global, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		log.Debug(log.CatGit, "Global git config unavailable", "error", err)
		return "", nil
	}
	return global.Raw.Section(section).Option(key), nil
}

// Signature returns the configured committer identity.
func (r *Repository) Signature() (domain.Signature, error) {
	name, err := r.ConfigValue("user", "name")
	if err != nil {
		return domain.Signature{}, err
	}
	email, err := r.ConfigValue("user", "email")
	if err != nil {
		return domain.Signature{}, err
	}
	if name == "" || email == "" {
		return domain.Signature{}, errors.New("user.name and user.email must be set in git config")
	}
	return domain.Signature{Name: name, Email: email}, nil
}

// Archive writes a tar of the commit's tree. Entry times are the commit time
// so the archive is reproducible.
func (r *Repository) Archive(id domain.CommitID, prefix string, w io.Writer) error {
	c, err := r.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return fmt.Errorf("commit %s: %w", id.Short(), err)
	}
	tree, err := c.Tree()
	if err != nil {
		return err
	}
	mtime := c.Committer.When

	tw := tar.NewWriter(w)
	err = tree.Files().ForEach(func(f *object.File) error {
		hdr := &tar.Header{
			Name:    prefix + f.Name,
			ModTime: mtime,
			Format:  tar.FormatPAX,
		}
		switch f.Mode {
		case filemode.Symlink:
			target, err := f.Contents()
			if err != nil {
				return err
			}
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = target
			hdr.Mode = 0o777
			return tw.WriteHeader(hdr)
		case filemode.Executable:
			hdr.Mode = 0o755
		default:
			hdr.Mode = 0o644
		}
		hdr.Typeflag = tar.TypeReg
		hdr.Size = f.Size
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		rd, err := f.Reader()
		if err != nil {
			return err
		}
		defer func() { _ = rd.Close() }()
		_, err = io.Copy(tw, rd)
		return err
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", id.Short(), err)
	}
	return tw.Close()
}

func (r *Repository) commitTree(id domain.CommitID) (*object.Tree, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", id.Short(), err)
	}
	return c.Tree()
}

func (r *Repository) objectSignature() (*object.Signature, error) {
	s, err := r.Signature()
	if err != nil {
		return nil, err
	}
	return &object.Signature{Name: s.Name, Email: s.Email, When: r.now()}, nil
}

func hunkOp(op fdiff.Operation) domain.HunkOp {
	switch op {
	case fdiff.Add:
		return domain.HunkAdd
	case fdiff.Delete:
		return domain.HunkDelete
	default:
		return domain.HunkEqual
	}
}

// splitLines splits chunk content on newlines, dropping the empty element
// produced by a trailing newline. CRLF line endings are stripped too.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

package application

import (
	"fmt"
	"path"
	"strings"

	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/log"
)

// AllowList holds the path patterns that may be modified or untracked when a
// release starts. Patterns use path.Match syntax against slash-separated
// repo-relative paths; a pattern ending in "/**" matches everything below
// that directory.
type AllowList []string

// Allows reports whether p matches any pattern.
func (a AllowList) Allows(p string) bool {
	for _, pattern := range a {
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if strings.HasPrefix(p, dir+"/") {
				return true
			}
			continue
		}
		if ok, err := path.Match(pattern, p); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate rejects malformed patterns so a typo cannot silently widen or
// narrow the check.
func (a AllowList) Validate() error {
	for _, pattern := range a {
		if _, err := path.Match(strings.TrimSuffix(pattern, "/**"), ""); err != nil {
			return fmt.Errorf("invalid allow-list pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Evaluate applies the guard to a status report. It returns nil when nothing
// is staged and every unstaged or untracked path is allowed.
func (a AllowList) Evaluate(st domain.Status) error {
	var offending []string
	for _, p := range st.Unstaged {
		if !a.Allows(p) {
			offending = append(offending, p)
		}
	}
	for _, p := range st.Untracked {
		if !a.Allows(p) {
			offending = append(offending, p)
		}
	}
	if len(st.Staged) == 0 && len(offending) == 0 {
		return nil
	}
	return &domain.DirtyWorkingCopyError{Staged: st.Staged, Offending: offending}
}

// CheckClean inspects the working copy before any mutation. The returned
// error is a *domain.DirtyWorkingCopyError when the working copy is unfit.
func CheckClean(repo Repository, allowed AllowList) error {
	st, err := repo.Status()
	if err != nil {
		return fmt.Errorf("reading working copy status: %w", err)
	}
	if err := allowed.Evaluate(st); err != nil {
		log.Warn(log.CatGit, "Working copy is not clean",
			"staged", len(st.Staged),
			"unstaged", len(st.Unstaged),
			"untracked", len(st.Untracked))
		return err
	}
	log.Debug(log.CatGit, "Working copy clean", "allowed_changes", len(st.Unstaged)+len(st.Untracked))
	return nil
}

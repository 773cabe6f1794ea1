package application

import (
	"fmt"
	"strings"

	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
)

// ReleaseNotes are the lines added to the changelog, in diff order.
type ReleaseNotes []string

// String joins the notes with a single newline.
func (n ReleaseNotes) String() string {
	return strings.Join(n, "\n")
}

// AddedLines collects the non-empty lines of pure-addition hunks for path.
// Hunks for other paths are ignored.
func AddedLines(hunks []domain.Hunk, path string) ReleaseNotes {
	var notes ReleaseNotes
	for _, h := range hunks {
		if h.Op != domain.HunkAdd || h.Path != path {
			continue
		}
		for _, line := range h.Lines {
			if line == "" {
				continue
			}
			notes = append(notes, line)
		}
	}
	return notes
}

// ExtractAddedLines diffs the changelog between two commits and returns the
// lines present only in after.
func ExtractAddedLines(repo Repository, before, after domain.CommitID, changelog string) (ReleaseNotes, error) {
	hunks, err := repo.DiffTree(before, after, changelog)
	if err != nil {
		return nil, fmt.Errorf("diffing %s between %s and %s: %w", changelog, before.Short(), after.Short(), err)
	}
	return AddedLines(hunks, changelog), nil
}

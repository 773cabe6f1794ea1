package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
)

var kilnAllowList = AllowList{"CHANGELOG.md", "utils/**"}

func TestAllowList_Allows(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"CHANGELOG.md", true},
		{"utils/release.py", true},
		{"utils/nested/helper.sh", true},
		{"docs/CHANGELOG.md", false},
		{"CHANGELOG.md.bak", false},
		{"utils", false},
		{"utilsx/release.py", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, kilnAllowList.Allows(tt.path))
		})
	}
}

func TestAllowList_GlobPatterns(t *testing.T) {
	allow := AllowList{"utils/*.py"}
	require.True(t, allow.Allows("utils/release.py"))
	require.False(t, allow.Allows("utils/nested/release.py"))
	require.False(t, allow.Allows("utils/release.sh"))
}

func TestAllowList_Validate(t *testing.T) {
	require.NoError(t, kilnAllowList.Validate())
	require.Error(t, AllowList{"utils/[a-"}.Validate())
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.Status
		wantErr       bool
		wantOffending []string
	}{
		{
			name:   "pristine",
			status: domain.Status{},
		},
		{
			name:   "only changelog modified",
			status: domain.Status{Unstaged: []string{"CHANGELOG.md"}},
		},
		{
			name:   "utility scripts untracked",
			status: domain.Status{Untracked: []string{"utils/new.sh"}},
		},
		{
			name:    "staged changelog still fails",
			status:  domain.Status{Staged: []string{"CHANGELOG.md"}},
			wantErr: true,
		},
		{
			name:          "untracked notes",
			status:        domain.Status{Unstaged: []string{"CHANGELOG.md"}, Untracked: []string{"notes.txt"}},
			wantErr:       true,
			wantOffending: []string{"notes.txt"},
		},
		{
			name:          "modified manifest",
			status:        domain.Status{Unstaged: []string{"cli/Cargo.toml"}},
			wantErr:       true,
			wantOffending: []string{"cli/Cargo.toml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := kilnAllowList.Evaluate(tt.status)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var dirty *domain.DirtyWorkingCopyError
			require.True(t, errors.As(err, &dirty))
			require.Equal(t, tt.wantOffending, dirty.Offending)
			require.Equal(t, tt.status.Staged, dirty.Staged)
		})
	}
}

func TestDirtyWorkingCopyError_Message(t *testing.T) {
	err := &domain.DirtyWorkingCopyError{Staged: []string{"a.txt"}, Offending: []string{"notes.txt", "b.txt"}}
	require.Equal(t, "working copy contains unexpected changes (staged: a.txt; not allowed: notes.txt, b.txt)", err.Error())
}

func genPath(t *rapid.T, label string) string {
	return rapid.SampledFrom([]string{
		"CHANGELOG.md",
		"utils/release.py",
		"utils/lib/common.sh",
		"notes.txt",
		"cli/Cargo.toml",
		"kiln_lib/src/lib.rs",
		"docs/CHANGELOG.md",
	}).Draw(t, label)
}

func TestProperty_StagedAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		st := domain.Status{
			Staged:    rapid.SliceOfN(rapid.Custom(func(t *rapid.T) string { return genPath(t, "staged") }), 1, 4).Draw(t, "staged"),
			Unstaged:  rapid.SliceOf(rapid.SampledFrom([]string{"CHANGELOG.md", "utils/a.sh"})).Draw(t, "unstaged"),
			Untracked: rapid.SliceOf(rapid.SampledFrom([]string{"utils/b.sh"})).Draw(t, "untracked"),
		}
		if kilnAllowList.Evaluate(st) == nil {
			t.Fatalf("staged changes %v passed the guard", st.Staged)
		}
	})
}

func TestProperty_PassesIffEveryPathAllowed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.Custom(func(t *rapid.T) string { return genPath(t, "path") })
		st := domain.Status{
			Unstaged:  rapid.SliceOf(gen).Draw(t, "unstaged"),
			Untracked: rapid.SliceOf(gen).Draw(t, "untracked"),
		}
		allAllowed := true
		for _, p := range append(append([]string{}, st.Unstaged...), st.Untracked...) {
			if !kilnAllowList.Allows(p) {
				allAllowed = false
			}
		}
		err := kilnAllowList.Evaluate(st)
		if allAllowed && err != nil {
			t.Fatalf("allowed status %+v rejected: %v", st, err)
		}
		if !allAllowed && err == nil {
			t.Fatalf("status %+v with disallowed paths accepted", st)
		}
	})
}

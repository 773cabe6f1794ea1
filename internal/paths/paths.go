// Package paths resolves the repository-relative locations kiln-release
// reads and writes.
package paths

import (
	"path/filepath"
	"strings"
)

const (
	// ConfigFile is the per-repository configuration file name.
	ConfigFile = ".kiln-release.yaml"

	// DefaultDistDir holds per-version artifact directories.
	DefaultDistDir = "dist"

	// ReleaseRecord is the local record written next to a version's artifacts.
	ReleaseRecord = "release.yaml"

	journalDir  = "kiln-release"
	journalFile = "journal.db"
)

// ConfigPath returns the configuration file for the repository at root,
// unless override is set.
func ConfigPath(root, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(root, ConfigFile)
}

// JournalPath returns the run journal database. It lives inside .git so it
// never shows up as a working copy change.
func JournalPath(root string) string {
	return filepath.Join(root, ".git", journalDir, journalFile)
}

// DistRoot returns the directory holding every version's artifacts. A
// relative dist is resolved against root.
func DistRoot(root, dist string) string {
	if dist == "" {
		dist = DefaultDistDir
	}
	if !filepath.IsAbs(dist) {
		dist = filepath.Join(root, dist)
	}
	return dist
}

// DistDir returns the artifact directory for version.
func DistDir(root, dist, version string) string {
	return filepath.Join(DistRoot(root, dist), version)
}

// InRepo returns p relative to root in slash form, and false when p lies
// outside root.
func InRepo(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// RecordPath returns the release record for version.
func RecordPath(root, dist, version string) string {
	return filepath.Join(DistDir(root, dist, version), ReleaseRecord)
}

// RepoRelative converts a slash-separated repository path to an absolute
// path under root.
func RepoRelative(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

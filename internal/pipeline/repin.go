package pipeline

import (
	"context"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/manifest"
	"github.com/simplybusiness/kiln-release/internal/paths"
)

// Repin points every service manifest's library dependency at branch and,
// when b is non-nil, refreshes the service lockfiles. It returns the
// manifests it changed. Nothing is staged or committed.
func Repin(ctx context.Context, cfg config.Config, root, branch string, b build.Builder) ([]string, error) {
	lib, _ := cfg.Library()
	want := manifest.Branch(branch)

	var changed []string
	for _, svc := range cfg.Services() {
		path := paths.RepoRelative(root, svc.ManifestPath())
		doc, err := manifest.Load(path)
		if err != nil {
			return changed, err
		}
		if pin, ok, err := doc.Dependency(lib.Name); err != nil {
			return changed, err
		} else if ok && pin == want {
			log.Debug(log.CatManifest, "Already pinned", "manifest", svc.ManifestPath(), "branch", branch)
			continue
		}

		if err := manifest.PinDependency(path, lib.Name, want); err != nil {
			return changed, err
		}
		if b != nil {
			if err := b.RefreshLockfile(ctx, path); err != nil {
				return changed, &build.BuildError{Component: svc.Name, Step: "lockfile", Err: err}
			}
		}
		log.Info(log.CatManifest, "Re-pinned dependency", "manifest", svc.ManifestPath(), "dependency", lib.Name, "branch", branch)
		changed = append(changed, svc.ManifestPath())
	}
	return changed, nil
}

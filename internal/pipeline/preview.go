package pipeline

import (
	"os"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/git/application"
	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/manifest"
	"github.com/simplybusiness/kiln-release/internal/paths"
	"github.com/simplybusiness/kiln-release/internal/version"
)

// PendingRev stands in for the library version commit in previewed pins;
// the real commit only exists once the run makes it.
const PendingRev = "0000000000000000000000000000000000000000"

// Preview is what a run would do, computed without touching the repository.
type Preview struct {
	Version version.Version
	Branch  string
	Tag     string
	Latest  string // Highest existing release tag, "" if none
	Steps   []string
	Aliases []string
	Images  []string // Every image reference the run would produce
	Assets  []string // Upload names, in upload order
	Diffs   []string // Manifest previews, in commit order
}

// BuildPreview runs the pre-mutation checks for input and computes the plan
// and manifest edits in memory.
func BuildPreview(cfg config.Config, repo application.Repository, input string) (*Preview, error) {
	v, err := Validate(cfg, repo, input)
	if err != nil {
		return nil, err
	}
	tags, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	latest, _ := version.LatestTag(tags)

	pv := &Preview{
		Version: v,
		Branch:  v.Branch(),
		Tag:     v.Tag(),
		Latest:  latest,
		Steps:   Steps(cfg),
		Aliases: version.TagAliases(v),
		Assets:  assetNames(cfg, v),
	}
	for _, img := range cfg.Images {
		for _, alias := range pv.Aliases {
			pv.Images = append(pv.Images, img.Repository+":"+alias)
		}
	}

	lib, _ := cfg.Library()
	root := repo.Root()
	edit := func(comp config.ComponentConfig, pin bool) error {
		path := comp.ManifestPath()
		before, err := os.ReadFile(paths.RepoRelative(root, path))
		if err != nil {
			return &manifest.ManifestError{Path: path, Reason: "cannot read manifest", Err: err}
		}
		doc, err := manifest.Parse(path, before)
		if err != nil {
			return err
		}
		if pin {
			if err := doc.PinDependency(lib.Name, manifest.Rev(PendingRev)); err != nil {
				return err
			}
		}
		if err := doc.SetVersion(v); err != nil {
			return err
		}
		if d := manifest.Preview(path, before, doc.Bytes()); d != "" {
			pv.Diffs = append(pv.Diffs, d)
		}
		return nil
	}

	if err := edit(lib, false); err != nil {
		return nil, err
	}
	for _, svc := range cfg.Services() {
		if err := edit(svc, true); err != nil {
			return nil, err
		}
	}
	if cli, ok := cfg.Component(cfg.CLI.Component); ok {
		if err := edit(cli, false); err != nil {
			return nil, err
		}
	}
	return pv, nil
}

func assetNames(cfg config.Config, v version.Version) []string {
	var out []string
	for _, tarball := range []string{
		build.CLITarballName(cfg.CLI.Tool, v.String(), cfg.CLI.Arch),
		build.SourceTarballName(cfg.Project.Name, v.String()),
	} {
		hashfile := tarball + integrity.HashfileSuffix
		out = append(out, tarball, hashfile, hashfile+integrity.SignatureSuffix)
	}
	return out
}

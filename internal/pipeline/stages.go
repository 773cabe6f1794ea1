package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/git/application"
	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/manifest"
	"github.com/simplybusiness/kiln-release/internal/paths"
	"github.com/simplybusiness/kiln-release/internal/publish"
	"github.com/simplybusiness/kiln-release/internal/version"
)

// release is the state of one run as it moves through the stages.
type release struct {
	p       *Pipeline
	input   string
	res     *Result
	version version.Version
	signer  *integrity.Identity
	history *application.History
	journal *journal

	changelog  domain.CommitInfo
	libraryRev domain.CommitID
	tagged     domain.CommitInfo
	distReady  bool
	tarballs   []string // CLI tarball then source tarball
}

// Validate runs the pre-mutation checks shared by runs and previews: the
// working-copy guard, the version argument, its image tags and, when
// required, the newer-than-latest check.
func Validate(cfg config.Config, repo application.Repository, input string) (version.Version, error) {
	allowed := allowList(cfg, repo.Root())
	if err := allowed.Validate(); err != nil {
		return version.Version{}, err
	}
	if err := application.CheckClean(repo, allowed); err != nil {
		return version.Version{}, err
	}

	v, err := version.Parse(input)
	if err != nil {
		return version.Version{}, err
	}
	if len(cfg.Images) > 0 {
		for _, alias := range version.TagAliases(v) {
			if !build.ValidTag(alias) {
				return version.Version{}, &version.InvalidVersionError{Input: input, Reason: fmt.Sprintf("%q is not a valid image tag", alias)}
			}
		}
	}

	if cfg.Project.RequireNewer {
		tags, err := repo.Tags()
		if err != nil {
			return version.Version{}, fmt.Errorf("listing tags: %w", err)
		}
		if err := version.CheckNewer(v, tags); err != nil {
			return version.Version{}, err
		}
	}
	return v, nil
}

// allowList extends the configured patterns with the artifact directory
// when it lives inside the repository, so earlier releases' output never
// blocks the next run.
func allowList(cfg config.Config, root string) application.AllowList {
	allowed := slices.Clone(application.AllowList(cfg.Project.AllowedPaths))
	if rel, ok := paths.InRepo(root, paths.DistRoot(root, cfg.Project.DistDir)); ok {
		allowed = append(allowed, rel+"/**")
	}
	return allowed
}

func (r *release) validate(_ context.Context) error {
	v, err := Validate(r.p.cfg, r.p.deps.Repo, r.input)
	if err != nil {
		return err
	}
	r.version = v
	r.res.Version = v
	r.res.Branch = v.Branch()
	r.res.Tag = v.Tag()
	r.res.Aliases = version.TagAliases(v)
	r.res.DistDir = paths.DistDir(r.p.deps.Repo.Root(), r.p.cfg.Project.DistDir, v.String())
	return nil
}

func (r *release) resolveSigner(ctx context.Context) error {
	keyID := r.p.cfg.Signing.KeyID
	if keyID == "" {
		var err error
		if keyID, err = r.p.deps.Repo.ConfigValue("user", "signingkey"); err != nil {
			return fmt.Errorf("reading user.signingkey: %w", err)
		}
	}
	if keyID == "" {
		return &integrity.SigningError{Reason: "no signing identity", Err: domain.ErrNoSigningKey}
	}

	id, err := r.p.deps.Signer(ctx, keyID, r.passphrase)
	if err != nil {
		return err
	}
	r.signer = id
	log.Info(log.CatSign, "Signing identity resolved", "key_id", id.KeyID)
	return nil
}

func (r *release) passphrase(keyID string) ([]byte, error) {
	if r.p.deps.Prompter == nil {
		return nil, errors.New("key is encrypted and no terminal is available for the passphrase")
	}
	return r.p.deps.Prompter.Passphrase(keyID)
}

// summary describes the run for the confirmation prompt.
func (r *release) summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Branch:  %s\n", r.version.Branch())
	fmt.Fprintf(&b, "Tag:     %s (signed by %s)\n", r.version.Tag(), r.signer.KeyID)
	fmt.Fprintf(&b, "Remote:  %s\n", r.p.cfg.Git.Remote)
	fmt.Fprintf(&b, "Images:  %d, tagged %s\n", len(r.p.cfg.Images), strings.Join(r.res.Aliases, ", "))
	fmt.Fprintf(&b, "Release: draft on %s", r.p.cfg.Publish.Repository)
	return b.String()
}

func (r *release) createBranch(_ context.Context) error {
	if _, err := r.history.CreateBranch(); err != nil {
		return err
	}
	step := application.Step{State: application.StateChangelogCommitted}
	info, err := r.history.Commit(step, r.p.cfg.Project.Changelog)
	if err != nil {
		return err
	}
	r.changelog = info
	r.recordCommit(step, info)
	return nil
}

func (r *release) extractNotes(_ context.Context) error {
	notes, err := application.ExtractAddedLines(r.p.deps.Repo, r.changelog.Parent, r.changelog.ID, r.p.cfg.Project.Changelog)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		log.Warn(log.CatGit, "Changelog commit added no lines", "changelog", r.p.cfg.Project.Changelog)
	}
	r.res.Notes = notes
	return nil
}

func (r *release) updateManifests(ctx context.Context) error {
	lib, _ := r.p.cfg.Library()
	setVersion := func(path string) error { return manifest.SetVersion(path, r.version) }

	info, err := r.commitComponent(ctx, application.Step{State: application.StateVersionCommitted, Component: lib.Name}, lib, setVersion)
	if err != nil {
		return err
	}
	r.libraryRev = info.ID
	if r.p.cfg.Git.PushLibraryEarly {
		if err := r.history.PushLibrary(ctx); err != nil {
			return err
		}
	}

	pin := manifest.Rev(string(r.libraryRev))
	for _, svc := range r.p.cfg.Services() {
		repin := func(path string) error { return manifest.PinDependency(path, lib.Name, pin) }
		if _, err := r.commitComponent(ctx, application.Step{State: application.StateDependencyCommitted, Component: svc.Name}, svc, repin); err != nil {
			return err
		}
		if _, err := r.commitComponent(ctx, application.Step{State: application.StateVersionCommitted, Component: svc.Name}, svc, setVersion); err != nil {
			return err
		}
	}

	cli, _ := r.p.cfg.Component(r.p.cfg.CLI.Component)
	_, err = r.commitComponent(ctx, application.Step{State: application.StateCliVersionCommitted, Component: cli.Name}, cli, setVersion)
	return err
}

// commitComponent edits one manifest, refreshes its lockfile and commits
// exactly those two files for step.
func (r *release) commitComponent(ctx context.Context, step application.Step, comp config.ComponentConfig, edit func(path string) error) (domain.CommitInfo, error) {
	manifestPath := paths.RepoRelative(r.p.deps.Repo.Root(), comp.ManifestPath())
	if err := edit(manifestPath); err != nil {
		return domain.CommitInfo{}, err
	}
	if err := r.p.deps.Builder.RefreshLockfile(ctx, manifestPath); err != nil {
		return domain.CommitInfo{}, &build.BuildError{Component: comp.Name, Step: "lockfile", Err: err}
	}
	info, err := r.history.Commit(step, comp.ManifestPath(), comp.LockfilePath())
	if err != nil {
		return domain.CommitInfo{}, err
	}
	r.recordCommit(step, info)
	return info, nil
}

func (r *release) recordCommit(step application.Step, info domain.CommitInfo) {
	r.res.Commits = append(r.res.Commits, Commit{Step: step.String(), ID: string(info.ID), Subject: info.Subject})
}

func (r *release) tagAndPush(ctx context.Context) error {
	head, err := r.history.Tag(r.signer.Entity)
	if err != nil {
		return err
	}
	if r.tagged, err = r.p.deps.Repo.CommitInfo(head); err != nil {
		return &domain.GitOperationError{Op: "read commit", Ref: head.Short(), Err: err}
	}
	if err := r.history.PushBranch(ctx); err != nil {
		return err
	}
	return r.history.PushTag(ctx)
}

func (r *release) buildImages(ctx context.Context) error {
	if err := resetDistDir(r.res.DistDir); err != nil {
		return err
	}
	r.distReady = true

	root := r.p.deps.Repo.Root()
	labels := map[string]string{
		"org.opencontainers.image.version":  r.version.String(),
		"org.opencontainers.image.revision": string(r.tagged.ID),
	}
	if url, err := r.p.deps.Repo.RemoteURL(r.p.cfg.Git.Remote); err == nil && url != "" {
		labels["org.opencontainers.image.source"] = url
	}

	jobs := make([]build.ImageJob, 0, len(r.p.cfg.Images))
	for _, img := range r.p.cfg.Images {
		comp, ok := r.p.cfg.Component(img.Component)
		if !ok {
			return fmt.Errorf("image %s: unknown component %q", img.Name, img.Component)
		}
		jobs = append(jobs, build.ImageJob{
			Name:       img.Name,
			Repository: img.Repository,
			Binary:     r.crossSpec(comp),
			Context:    paths.RepoRelative(root, img.Context),
			CopyBinary: img.CopyBinary,
			Labels:     labels,
		})
	}

	if len(jobs) > 0 {
		images, err := build.BuildImages(ctx, r.p.deps.Builder, jobs, r.res.Aliases, r.p.cfg.Build.Concurrency)
		if err != nil {
			return err
		}
		r.res.Images = images
		for _, img := range images {
			for _, ref := range img.Refs {
				r.res.Artifacts = append(r.res.Artifacts, Artifact{Kind: KindImage, Path: ref})
			}
		}
	}

	ref := ""
	if len(r.res.Images) > 0 {
		ref = r.res.Images[0].Ref
	}
	r.journal.advance(StepImagesBuilt, ref)
	return nil
}

func (r *release) crossSpec(comp config.ComponentConfig) build.CrossBuildSpec {
	return build.CrossBuildSpec{
		Component: comp.Name,
		Dir:       paths.RepoRelative(r.p.deps.Repo.Root(), comp.Path),
		Task:      comp.Task,
		Target:    r.p.cfg.Build.Target,
		Binary:    comp.Binary,
	}
}

func (r *release) packageCLI(ctx context.Context) error {
	comp, ok := r.p.cfg.Component(r.p.cfg.CLI.Component)
	if !ok {
		return fmt.Errorf("unknown cli component %q", r.p.cfg.CLI.Component)
	}
	bin, err := build.CrossBuild(ctx, r.p.deps.Builder, r.crossSpec(comp))
	if err != nil {
		return err
	}
	tarball, err := build.PackageCLI(build.CLIPackage{
		Binary:  bin,
		OutDir:  r.res.DistDir,
		Tool:    r.p.cfg.CLI.Tool,
		Version: r.version.String(),
		Arch:    r.p.cfg.CLI.Arch,
		ModTime: r.tagged.Date,
	})
	if err != nil {
		return err
	}
	r.addTarball(tarball)
	r.journal.advance(StepCLIPackaged, tarball)
	return nil
}

func (r *release) packageSource(_ context.Context) error {
	project := r.p.cfg.Project.Name
	prefix := project + "-" + r.version.String() + "/"
	tarball, err := build.PackageSource(r.res.DistDir, project, r.version.String(), func(w io.Writer) error {
		return r.p.deps.Repo.Archive(r.tagged.ID, prefix, w)
	})
	if err != nil {
		return err
	}
	r.addTarball(tarball)
	r.journal.advance(StepSourcePackaged, tarball)
	return nil
}

func (r *release) addTarball(path string) {
	r.tarballs = append(r.tarballs, path)
	r.res.Artifacts = append(r.res.Artifacts, Artifact{Kind: KindTarball, Path: path})
}

// signArtifacts writes a hash file per tarball and signs the hash file, not
// the tarball. The upload set is each tarball, its hash file and signature.
func (r *release) signArtifacts(_ context.Context) error {
	assets := make([]string, 0, 3*len(r.tarballs))
	for _, tarball := range r.tarballs {
		sum, err := integrity.Digest(tarball)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", filepath.Base(tarball), err)
		}
		hashfile := tarball + integrity.HashfileSuffix
		if err := integrity.WriteHashfile(hashfile, sum, filepath.Base(tarball)); err != nil {
			return fmt.Errorf("writing hash file: %w", err)
		}
		sig, err := integrity.SignFile(hashfile, r.signer)
		if err != nil {
			return err
		}

		r.setDigest(tarball, sum)
		r.res.Artifacts = append(r.res.Artifacts,
			Artifact{Kind: KindHashfile, Path: hashfile},
			Artifact{Kind: KindSignature, Path: sig},
		)
		assets = append(assets, tarball, hashfile, sig)
	}
	r.res.Assets = assets
	r.journal.advance(StepSigned, "")
	return nil
}

func (r *release) setDigest(path, sum string) {
	for i := range r.res.Artifacts {
		if r.res.Artifacts[i].Path == path {
			r.res.Artifacts[i].Digest = sum
		}
	}
}

func (r *release) publish(ctx context.Context) error {
	if r.p.deps.Publisher == nil {
		return fmt.Errorf("no publisher configured: %w", publish.ErrNoToken)
	}
	rel, err := publish.Publish(ctx, r.p.deps.Publisher, publish.Request{
		Tag:    r.version.Tag(),
		Title:  r.p.cfg.ReleaseTitle(r.version.String()),
		Notes:  r.res.Notes.String(),
		Assets: r.res.Assets,
	})
	r.res.Release = rel
	if err != nil {
		return err
	}
	r.journal.advance(StepPublished, rel.HTMLURL)
	return nil
}

// resetDistDir removes artifacts left by an earlier run for the same version
// so nothing stale is picked up, then recreates the directory.
func resetDistDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		log.Warn(log.CatBuild, "Removing artifacts from an earlier run", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing stale artifacts: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	return nil
}

func (r *release) writeRecord() {
	if !r.distReady {
		return
	}
	path := filepath.Join(r.res.DistDir, paths.ReleaseRecord)
	if err := WriteRecord(path, NewRecord(r.res)); err != nil {
		log.Warn(log.CatPipeline, "Could not write release record", "path", path, "error", err)
		return
	}
	r.res.Record = path
}

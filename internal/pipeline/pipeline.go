// Package pipeline runs a release from version validation to the draft
// release. Each stage runs in its own span and every completed step is
// written to the run journal.
//
// Stages execute strictly in order against the single working copy:
//
//	validate → signing → confirm → history → changelog → manifests → tag
//	         → images → cli → source → sign → publish
//
// Only the image stage fans out, and only across disjoint build contexts.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/git/application"
	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/publish"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
	"github.com/simplybusiness/kiln-release/internal/version"
)

// TracerName names the tracer pipeline spans are created with.
const TracerName = "github.com/simplybusiness/kiln-release/internal/pipeline"

// Steps recorded after the release history is pushed.
const (
	StepImagesBuilt    = "images_built"
	StepCLIPackaged    = "cli_packaged"
	StepSourcePackaged = "source_packaged"
	StepSigned         = "artifacts_signed"
	StepPublished      = "published"
)

var artifactSteps = []string{StepImagesBuilt, StepCLIPackaged, StepSourcePackaged, StepSigned, StepPublished}

// Prompter asks the operator for confirmation and key passphrases.
type Prompter interface {
	Confirm(question, details string) (bool, error)
	Passphrase(keyID string) ([]byte, error)
}

// SignerFunc resolves the identity that signs the tag and the hash files.
type SignerFunc func(ctx context.Context, keyID string, passphrase integrity.PassphraseFunc) (*integrity.Identity, error)

// Deps are the collaborators a Pipeline drives.
type Deps struct {
	Repo      application.Repository
	Builder   build.Builder
	Publisher publish.Publisher
	Runs      rundomain.RunRepository // Optional; runs are only logged when nil
	Prompter  Prompter
	Signer    SignerFunc // Defaults to KeyringSigner(cfg.Signing)
	Tracer    trace.Tracer
	Now       func() time.Time
	NewRunID  func() string
}

// Options tune a single run.
type Options struct {
	AssumeYes bool // Skip the confirmation prompt
}

// Pipeline executes release runs for one repository.
type Pipeline struct {
	cfg  config.Config
	deps Deps
	opts Options
}

// New creates a pipeline. Unset optional dependencies get their defaults.
func New(cfg config.Config, deps Deps, opts Options) *Pipeline {
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(TracerName)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	if deps.Signer == nil {
		deps.Signer = KeyringSigner(cfg.Signing)
	}
	return &Pipeline{cfg: cfg, deps: deps, opts: opts}
}

// Layout derives the release history layout from cfg.
func Layout(cfg config.Config) application.PlanLayout {
	lib, _ := cfg.Library()
	var services []string
	for _, svc := range cfg.Services() {
		services = append(services, svc.Name)
	}
	return application.PlanLayout{
		Library:          lib.Name,
		Services:         services,
		CLI:              cfg.CLI.Component,
		PushLibraryEarly: cfg.Git.PushLibraryEarly,
	}
}

// Steps returns the journal plan for cfg: the release history steps followed
// by the artifact steps.
func Steps(cfg config.Config) []string {
	hist := application.HistoryPlan(Layout(cfg))
	out := make([]string, 0, len(hist)+len(artifactSteps))
	for _, s := range hist {
		out = append(out, s.String())
	}
	return append(out, artifactSteps...)
}

// Commit is one release commit, in creation order.
type Commit struct {
	Step    string `yaml:"step"`
	ID      string `yaml:"id"`
	Subject string `yaml:"subject"`
}

// ArtifactKind classifies a produced artifact.
type ArtifactKind string

const (
	KindTarball   ArtifactKind = "tarball"
	KindHashfile  ArtifactKind = "hashfile"
	KindSignature ArtifactKind = "signature"
	KindImage     ArtifactKind = "image"
)

// Artifact is one output of a run. Path is an image reference for images.
type Artifact struct {
	Kind   ArtifactKind `yaml:"kind"`
	Path   string       `yaml:"path"`
	Digest string       `yaml:"sha256,omitempty"`
}

// Result describes a run as far as it got.
type Result struct {
	RunID     string
	Version   version.Version
	Branch    string
	Tag       string
	Commits   []Commit
	Notes     application.ReleaseNotes
	Aliases   []string
	Images    []build.BuiltImage
	Artifacts []Artifact
	Assets    []string // Upload set, in upload order
	Release   publish.Release
	DistDir   string
	Record    string // Path of the release record, once written
}

// Run executes one release for the version named by input. On failure the
// returned Result still describes everything completed before it.
func (p *Pipeline) Run(ctx context.Context, input string) (*Result, error) {
	ctx, span := p.deps.Tracer.Start(ctx, "pipeline.run")
	defer span.End()

	r := &release{p: p, input: input, res: &Result{RunID: p.deps.NewRunID()}}
	span.SetAttributes(attribute.String("kiln.run_id", r.res.RunID))
	log.Info(log.CatPipeline, "Release run starting", "run_id", r.res.RunID, "input", input)

	if err := p.stage(ctx, r, "validate", r.validate); err != nil {
		return r.res, err
	}
	span.SetAttributes(attribute.String("kiln.version", r.version.String()))
	if err := p.stage(ctx, r, "signing", r.resolveSigner); err != nil {
		return r.res, err
	}
	if err := r.confirm(); err != nil {
		return r.res, err
	}

	r.journal = startJournal(p.deps.Runs, r.res.RunID, r.version.String(), p.deps.Repo.Root(), Steps(p.cfg), p.deps.Now)
	r.history = application.NewHistory(p.deps.Repo, r.version, p.cfg.Git.Remote, Layout(p.cfg))
	r.history.OnAdvance(func(step application.Step, commit domain.CommitID) {
		r.journal.advance(step.String(), string(commit))
	})

	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"history", r.createBranch},
		{"changelog", r.extractNotes},
		{"manifests", r.updateManifests},
		{"tag", r.tagAndPush},
		{"images", r.buildImages},
		{"cli", r.packageCLI},
		{"source", r.packageSource},
		{"sign", r.signArtifacts},
		{"publish", r.publish},
	}
	for _, s := range stages {
		if err := p.stage(ctx, r, s.name, s.fn); err != nil {
			r.journal.fail(err)
			r.writeRecord()
			span.SetStatus(codes.Error, err.Error())
			return r.res, err
		}
	}

	r.journal.succeed()
	r.writeRecord()
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatPipeline, "Release run complete",
		"run_id", r.res.RunID,
		"tag", r.res.Tag,
		"release", r.res.Release.HTMLURL)
	return r.res, nil
}

// stage runs fn in a "pipeline.<name>" span and wraps failures in a
// StageError carrying the last completed step.
func (p *Pipeline) stage(ctx context.Context, r *release, name string, fn func(context.Context) error) error {
	ctx, span := p.deps.Tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := p.deps.Now()
	log.Debug(log.CatPipeline, "Stage started", "run_id", r.res.RunID, "stage", name)
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatPipeline, "Stage failed", err, "run_id", r.res.RunID, "stage", name)
		return &StageError{Stage: name, LastStep: r.journal.lastStep(), Err: err}
	}
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatPipeline, "Stage complete",
		"run_id", r.res.RunID,
		"stage", name,
		"duration", p.deps.Now().Sub(start).Round(time.Millisecond))
	return nil
}

// confirm asks the operator before the first mutation.
func (r *release) confirm() error {
	if r.p.opts.AssumeYes {
		return nil
	}
	if r.p.deps.Prompter == nil {
		return errors.New("confirmation required: no terminal available (pass --yes to skip)")
	}
	ok, err := r.p.deps.Prompter.Confirm("Release "+r.version.String()+"?", r.summary())
	if err != nil {
		return errors.Join(ErrAborted, err)
	}
	if !ok {
		log.Info(log.CatPipeline, "Release declined", "run_id", r.res.RunID)
		return ErrAborted
	}
	return nil
}

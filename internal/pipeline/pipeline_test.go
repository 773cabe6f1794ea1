package pipeline_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/config"
	domain "github.com/simplybusiness/kiln-release/internal/git/domain"
	"github.com/simplybusiness/kiln-release/internal/git/infrastructure"
	"github.com/simplybusiness/kiln-release/internal/infrastructure/sqlite"
	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/mocks"
	"github.com/simplybusiness/kiln-release/internal/pipeline"
	"github.com/simplybusiness/kiln-release/internal/publish"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
	"github.com/simplybusiness/kiln-release/internal/version"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	changelogBefore = "# Changelog\n\n## 1.3.0\n- Old entry\n"
	changelogAfter  = "# Changelog\n\n## 1.4.0\n- Added streaming reports\n- Fixed slack retries\n\n## 1.3.0\n- Old entry\n"

	libManifest       = "[package]\nname = \"kiln_lib\"\nversion = \"1.3.0\"\nedition = \"2018\"\n"
	collectorManifest = `[package]
name = "data-collector"
version = "1.3.0" # bumped on release

[dependencies]
kiln_lib = { git = "https://github.com/simplybusiness/Kiln", branch = "main", features = ["avro"] }
`
	cliManifest = "[package]\nname = \"kiln-cli\"\nversion = \"1.3.0\"\n"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary required for file transport")
	}
}

type fakePrompter struct {
	answer bool
	asked  []string
}

func (p *fakePrompter) Confirm(question, _ string) (bool, error) {
	p.asked = append(p.asked, question)
	return p.answer, nil
}

func (p *fakePrompter) Passphrase(string) ([]byte, error) {
	return nil, errors.New("unexpected passphrase prompt")
}

// fixture is a repository laid out like a small Kiln checkout, with a bare
// remote, an in-memory journal and mocked build and hosting backends.
type fixture struct {
	t         *testing.T
	dir       string
	raw       *git.Repository
	remote    *git.Repository
	repo      *infrastructure.Repository
	cfg       config.Config
	entity    *openpgp.Entity
	keyID     string
	builder   *mocks.MockBuilder
	publisher *mocks.MockPublisher
	runs      rundomain.RunRepository
	journal   *sqlite.DB
	spans     *tracetest.SpanRecorder
	prompter  *fakePrompter
	runCount  int

	mu      sync.Mutex
	images  []string
	tags    []string
	uploads []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	raw, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	entity, err := openpgp.NewEntity("Release Bot", "", "release@example.com", nil)
	require.NoError(t, err)
	keyID := fmt.Sprintf("%016X", entity.PrimaryKey.KeyId)

	gcfg, err := raw.Config()
	require.NoError(t, err)
	gcfg.User.Name = "Release Bot"
	gcfg.User.Email = "release@example.com"
	gcfg.Raw.Section("user").SetOption("signingkey", keyID)
	require.NoError(t, raw.SetConfig(gcfg))

	f := &fixture{t: t, dir: dir, raw: raw, entity: entity, keyID: keyID}
	f.write("CHANGELOG.md", changelogBefore)
	f.write("kiln_lib/Cargo.toml", libManifest)
	f.write("kiln_lib/Cargo.lock", "# lock kiln_lib\n")
	f.write("data-collector/Cargo.toml", collectorManifest)
	f.write("data-collector/Cargo.lock", "# lock data-collector\n")
	f.write("data-collector/Dockerfile", "FROM scratch\n")
	f.write("cli/Cargo.toml", cliManifest)
	f.write("cli/Cargo.lock", "# lock cli\n")
	f.write("tool-images/bundler-audit/Dockerfile", "FROM ruby\n")
	f.write("utils/release.sh", "#!/bin/sh\n")
	f.write(".gitignore", "target/\n")
	f.commitAll("Initial commit")

	remoteDir := t.TempDir()
	f.remote, err = git.PlainInit(remoteDir, true)
	require.NoError(t, err)
	_, err = raw.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
	require.NoError(t, err)

	f.repo, err = infrastructure.Discover(dir, infrastructure.WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)

	f.journal, err = sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.journal.Close() })
	f.runs = f.journal.Runs()

	f.cfg = testConfig()
	f.builder = mocks.NewMockBuilder(t)
	f.publisher = mocks.NewMockPublisher(t)
	f.spans = tracetest.NewSpanRecorder()
	f.prompter = &fakePrompter{answer: true}
	return f
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Components = []config.ComponentConfig{
		{Name: "kiln_lib", Kind: config.KindLibrary, Path: "kiln_lib"},
		{Name: "data-collector", Kind: config.KindService, Path: "data-collector", Task: "musl-build", Binary: "target/release/data-collector"},
		{Name: "cli", Kind: config.KindCLI, Path: "cli", Task: "musl-build", Binary: "target/release/kiln-cli"},
	}
	cfg.Images = []config.ImageConfig{
		{Name: "data-collector", Repository: "kiln/data-collector", Component: "data-collector", Context: "data-collector"},
		{Name: "bundler-audit", Repository: "kiln/bundler-audit", Component: "data-collector", Context: "tool-images/bundler-audit", CopyBinary: true},
	}
	return cfg
}

func (f *fixture) write(name, content string) {
	f.t.Helper()
	p := filepath.Join(f.dir, filepath.FromSlash(name))
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o600))
}

func (f *fixture) read(name string) string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(name)))
	require.NoError(f.t, err)
	return string(data)
}

func (f *fixture) commitAll(msg string) {
	f.t.Helper()
	wt, err := f.raw.Worktree()
	require.NoError(f.t, err)
	_, err = wt.Add(".")
	require.NoError(f.t, err)
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: fixedTime},
	})
	require.NoError(f.t, err)
}

func (f *fixture) pipeline(opts pipeline.Options) *pipeline.Pipeline {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	return pipeline.New(f.cfg, pipeline.Deps{
		Repo:      f.repo,
		Builder:   f.builder,
		Publisher: f.publisher,
		Runs:      f.runs,
		Prompter:  f.prompter,
		Signer: func(_ context.Context, keyID string, _ integrity.PassphraseFunc) (*integrity.Identity, error) {
			if keyID != f.keyID {
				return nil, &integrity.SigningError{KeyID: keyID, Reason: "not in keyring", Err: integrity.ErrKeyNotFound}
			}
			return &integrity.Identity{KeyID: keyID, Entity: f.entity}, nil
		},
		Tracer:   tp.Tracer("test"),
		Now:      func() time.Time { return fixedTime },
		NewRunID: func() string {
			f.runCount++
			return fmt.Sprintf("run-%d", f.runCount)
		},
	}, opts)
}

func (f *fixture) record(list *[]string, v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*list = append(*list, v)
}

// expectBuilds makes every native build produce binary and every image
// build succeed, or fail with imageErr when it is set.
func (f *fixture) expectBuilds(binary []byte, imageErr error) {
	f.builder.EXPECT().RefreshLockfile(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, manifestPath string) error {
			lock, err := os.OpenFile(filepath.Join(filepath.Dir(manifestPath), "Cargo.lock"), os.O_APPEND|os.O_WRONLY, 0)
			if err != nil {
				return err
			}
			_, err = lock.WriteString("# refreshed\n")
			return errors.Join(err, lock.Close())
		})
	f.builder.EXPECT().CrossBuild(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, spec build.CrossBuildSpec) (string, error) {
			bin := filepath.Join(spec.Dir, filepath.FromSlash(spec.Binary))
			if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
				return "", err
			}
			return bin, os.WriteFile(bin, binary, 0o755)
		})
	f.builder.EXPECT().BuildImage(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, spec build.ImageSpec) (build.Image, error) {
			if imageErr != nil {
				return nil, imageErr
			}
			f.record(&f.images, spec.Ref)
			img := mocks.NewMockImage(f.t)
			img.EXPECT().Ref().Return(spec.Ref)
			img.EXPECT().AddTag(mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, tag string) error {
					repo, _ := build.SplitRef(spec.Ref)
					f.record(&f.tags, repo+":"+tag)
					return nil
				})
			return img, nil
		})
}

var draft = publish.Release{ID: 7, Tag: "v1.4.0", HTMLURL: "https://github.com/simplybusiness/Kiln/releases/tag/untagged-7"}

func (f *fixture) expectPublish(tag, title string, failOn int) {
	rel := draft
	rel.Tag = tag
	f.publisher.EXPECT().CreateDraftRelease(mock.Anything, tag, title, mock.Anything).Return(rel, nil).Once()
	n := 0
	f.publisher.EXPECT().UploadAsset(mock.Anything, rel, mock.Anything).
		RunAndReturn(func(_ context.Context, _ publish.Release, path string) error {
			n++
			if n == failOn {
				return errors.New("upload rejected: 502")
			}
			f.record(&f.uploads, filepath.Base(path))
			return nil
		})
}

func (f *fixture) subjects(branch string) []string {
	f.t.Helper()
	ref, err := f.raw.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(f.t, err)
	iter, err := f.raw.Log(&git.LogOptions{From: ref.Hash()})
	require.NoError(f.t, err)
	var out []string
	require.NoError(f.t, iter.ForEach(func(c *object.Commit) error {
		out = append([]string{firstLine(c.Message)}, out...)
		return nil
	}))
	return out
}

func (f *fixture) fileAt(branch, name string) string {
	f.t.Helper()
	ref, err := f.raw.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(f.t, err)
	c, err := f.raw.CommitObject(ref.Hash())
	require.NoError(f.t, err)
	file, err := c.File(name)
	require.NoError(f.t, err)
	content, err := file.Contents()
	require.NoError(f.t, err)
	return content
}

func (f *fixture) spanNames() []string {
	var names []string
	for _, s := range f.spans.Ended() {
		names = append(names, s.Name())
	}
	return names
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

func TestRun_FullRelease(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.write("utils/release.sh", "#!/bin/sh\nset -e\n")
	f.expectBuilds([]byte("\x7fELF kiln"), nil)
	f.expectPublish("v1.4.0", "Version 1.4.0", 0)

	res, err := f.pipeline(pipeline.Options{}).Run(context.Background(), "1.4.0")
	require.NoError(t, err)
	require.Equal(t, []string{"Release 1.4.0?"}, f.prompter.asked)

	// History: branch, commits in order, signed tag, both refs on the remote.
	require.Equal(t, "release/1.4.0", res.Branch)
	branch, err := f.repo.CurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "release/1.4.0", branch)
	require.Equal(t, []string{
		"Initial commit",
		"Docs: Update CHANGELOG.md for 1.4.0 release.",
		"Kiln_lib: Update component version to 1.4.0",
		"Data-collector: Update kiln_lib dependency to 1.4.0",
		"Data-collector: Update component version to 1.4.0",
		"CLI: Update component version to 1.4.0",
	}, f.subjects("release/1.4.0"))
	require.Len(t, res.Commits, 5)
	require.Equal(t, "version_committed(kiln_lib)", res.Commits[1].Step)

	collector := f.fileAt("release/1.4.0", "data-collector/Cargo.toml")
	require.Contains(t, collector, `rev = "`+res.Commits[1].ID+`"`)
	require.NotContains(t, collector, "branch =")
	require.Contains(t, collector, `version = "1.4.0" # bumped on release`)
	require.Contains(t, f.fileAt("release/1.4.0", "data-collector/Cargo.lock"), "# refreshed")
	require.Equal(t, "#!/bin/sh\nset -e\n", f.read("utils/release.sh"), "allowed changes stay uncommitted")

	_, err = f.remote.Reference(plumbing.NewBranchReferenceName("release/1.4.0"), false)
	require.NoError(t, err)
	_, err = f.remote.Reference(plumbing.NewTagReferenceName("v1.4.0"), false)
	require.NoError(t, err)

	pub, err := integrity.ArmorPublicKey(f.entity)
	require.NoError(t, err)
	tagRef, err := f.raw.Tag("v1.4.0")
	require.NoError(t, err)
	tagObj, err := f.raw.TagObject(tagRef.Hash())
	require.NoError(t, err)
	_, err = tagObj.Verify(string(pub))
	require.NoError(t, err)

	// Notes come from the changelog commit, in diff order.
	require.Equal(t, "## 1.4.0\n- Added streaming reports\n- Fixed slack retries", res.Notes.String())

	// Images: built once each with the exact version, aliases added as tags.
	require.Equal(t, []string{"1.4.0", "1.4", "1", "latest"}, res.Aliases)
	require.Equal(t, []string{"kiln/data-collector:1.4.0", "kiln/bundler-audit:1.4.0"}, f.images)
	require.ElementsMatch(t, []string{
		"kiln/data-collector:1.4", "kiln/data-collector:1", "kiln/data-collector:latest",
		"kiln/bundler-audit:1.4", "kiln/bundler-audit:1", "kiln/bundler-audit:latest",
	}, f.tags)
	require.NoFileExists(t, filepath.Join(f.dir, "tool-images", "bundler-audit", "data-collector"))

	// Six uploads: each tarball, its hash file and the hash file's signature.
	require.Equal(t, []string{
		"kiln-cli-1.4.0.x86_64.tar.xz",
		"kiln-cli-1.4.0.x86_64.tar.xz.sha256",
		"kiln-cli-1.4.0.x86_64.tar.xz.sha256.sig",
		"Kiln-1.4.0.tar.xz",
		"Kiln-1.4.0.tar.xz.sha256",
		"Kiln-1.4.0.tar.xz.sha256.sig",
	}, f.uploads)
	keyring, err := integrity.ParseKeyring(bytes.NewReader(pub))
	require.NoError(t, err)
	for _, tarball := range []string{"kiln-cli-1.4.0.x86_64.tar.xz", "Kiln-1.4.0.tar.xz"} {
		p := filepath.Join(res.DistDir, tarball)
		_, err := keyring.VerifyArtifact(p, p+integrity.HashfileSuffix, p+integrity.HashfileSuffix+integrity.SignatureSuffix)
		require.NoError(t, err, tarball)
	}
	require.Equal(t, draft.HTMLURL, res.Release.HTMLURL)

	// Local record and journal.
	rec, err := pipeline.LoadRecord(res.Record)
	require.NoError(t, err)
	require.Equal(t, "run-1", rec.RunID)
	require.Equal(t, "v1.4.0", rec.Tag)
	require.Len(t, rec.Commits, 5)
	require.Len(t, rec.Images, 2)
	require.Equal(t, draft.HTMLURL, rec.Release)

	run, err := f.runs.FindByGUID("run-1")
	require.NoError(t, err)
	require.Equal(t, rundomain.RunSucceeded, run.State())
	require.Equal(t, pipeline.Steps(f.cfg), run.Plan())
	require.Equal(t, len(run.Plan()), run.Completed())
	transitions, err := f.runs.Transitions(run.ID())
	require.NoError(t, err)
	require.Len(t, transitions, len(run.Plan()))
	require.Equal(t, res.Commits[1].ID, transitions[2].Ref)

	require.Subset(t, f.spanNames(), []string{
		"pipeline.run", "pipeline.validate", "pipeline.signing", "pipeline.history",
		"pipeline.changelog", "pipeline.manifests", "pipeline.tag", "pipeline.images",
		"pipeline.cli", "pipeline.source", "pipeline.sign", "pipeline.publish",
	})
}

func TestRun_PreOneZeroAliases(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.expectBuilds([]byte("bin"), nil)
	f.expectPublish("v0.9.0", "Version 0.9.0", 0)

	// A journal that cannot be written does not stop the release.
	runs := mocks.NewMockRunRepository(t)
	runs.EXPECT().Save(mock.Anything).Return(errors.New("disk I/O error")).Once()
	f.runs = runs

	res, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "v0.9.0")
	require.NoError(t, err)
	require.Empty(t, f.prompter.asked)

	require.Equal(t, []string{"0.9.0", "0.9", "latest"}, res.Aliases)
	require.ElementsMatch(t, []string{
		"kiln/data-collector:0.9", "kiln/data-collector:latest",
		"kiln/bundler-audit:0.9", "kiln/bundler-audit:latest",
	}, f.tags)
	require.NotContains(t, f.tags, "kiln/data-collector:0")
	require.Equal(t, "v0.9.0", res.Tag)
}

func TestRun_DirtyWorkingCopyAbortsBeforeMutation(t *testing.T) {
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.write("notes.txt", "scratch\n")

	_, err := f.pipeline(pipeline.Options{}).Run(context.Background(), "1.4.0")

	var dirty *domain.DirtyWorkingCopyError
	require.ErrorAs(t, err, &dirty)
	require.Equal(t, []string{"notes.txt"}, dirty.Offending)
	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, "validate", stageErr.Stage)
	require.Empty(t, stageErr.LastStep)

	_, err = f.raw.Reference(plumbing.NewBranchReferenceName("release/1.4.0"), false)
	require.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
	require.Empty(t, f.prompter.asked)
	runs, err := f.runs.Latest(5)
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestRun_RejectsBeforeMutation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		setup func(f *fixture)
		check func(t *testing.T, err error)
	}{
		{
			name:  "invalid version",
			input: "1.4",
			check: func(t *testing.T, err error) {
				var invalid *version.InvalidVersionError
				require.ErrorAs(t, err, &invalid)
			},
		},
		{
			name:  "not newer than latest tag",
			input: "1.4.0",
			setup: func(f *fixture) {
				head, err := f.raw.Head()
				require.NoError(f.t, err)
				_, err = f.raw.CreateTag("v1.5.0", head.Hash(), nil)
				require.NoError(f.t, err)
			},
			check: func(t *testing.T, err error) {
				var notNewer *version.NotNewerError
				require.ErrorAs(t, err, &notNewer)
			},
		},
		{
			name:  "build metadata is not a valid image tag",
			input: "1.5.0-rc.1+build.7",
			check: func(t *testing.T, err error) {
				var invalid *version.InvalidVersionError
				require.ErrorAs(t, err, &invalid)
				require.ErrorContains(t, err, "image tag")
			},
		},
		{
			name:  "operator declines",
			input: "1.4.0",
			setup: func(f *fixture) { f.prompter.answer = false },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, pipeline.ErrAborted)
			},
		},
		{
			name:  "no signing key",
			input: "1.4.0",
			setup: func(f *fixture) { f.keyID = "DEADBEEFDEADBEEF" },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, integrity.ErrKeyNotFound)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.write("CHANGELOG.md", changelogAfter)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.pipeline(pipeline.Options{}).Run(context.Background(), tt.input)
			require.Error(t, err)
			tt.check(t, err)

			_, err = f.raw.Reference(plumbing.NewBranchReferenceName("release/1.4.0"), false)
			require.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
			runs, err := f.runs.Latest(5)
			require.NoError(t, err)
			require.Empty(t, runs)
		})
	}
}

func TestRun_StreamedDigestOfLargeCLITarball(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)

	binary := make([]byte, 3<<20)
	_, _ = rand.New(rand.NewSource(42)).Read(binary)
	f.expectBuilds(binary, nil)
	f.expectPublish("v1.4.0", "Version 1.4.0", 0)

	res, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.4.0")
	require.NoError(t, err)
	require.Contains(t, f.read("cli/Cargo.toml"), `version = "1.4.0"`)

	var tarball pipeline.Artifact
	for _, a := range res.Artifacts {
		if a.Kind == pipeline.KindTarball && filepath.Base(a.Path) == "kiln-cli-1.4.0.x86_64.tar.xz" {
			tarball = a
		}
	}
	require.NotEmpty(t, tarball.Path)

	whole, err := os.ReadFile(tarball.Path)
	require.NoError(t, err)
	require.Greater(t, len(whole), 2<<20)
	sum := sha256.Sum256(whole)
	require.Equal(t, hex.EncodeToString(sum[:]), tarball.Digest)

	hash, name, err := integrity.ReadHashfile(tarball.Path + integrity.HashfileSuffix)
	require.NoError(t, err)
	require.Equal(t, tarball.Digest, hash)
	require.Equal(t, "kiln-cli-1.4.0.x86_64.tar.xz", name)
}

func TestRun_ImageFailureAfterPush(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.expectBuilds([]byte("bin"), errors.New("docker daemon unavailable"))

	res, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.4.0")

	var buildErr *build.BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Equal(t, "image", buildErr.Step)
	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, "images", stageErr.Stage)
	require.Equal(t, "pushed", stageErr.LastStep)

	// The pushed tag stays; nothing is rolled back.
	_, err = f.remote.Reference(plumbing.NewTagReferenceName("v1.4.0"), false)
	require.NoError(t, err)
	require.Len(t, res.Commits, 5)

	run, err := f.runs.FindByGUID("run-1")
	require.NoError(t, err)
	require.Equal(t, rundomain.RunFailed, run.State())
	require.Equal(t, pipeline.StepImagesBuilt, run.FailedStep())
	require.Contains(t, run.Failure(), "docker daemon unavailable")
	require.FileExists(t, filepath.Join(res.DistDir, "release.yaml"))
}

func TestRun_PartialUploadIsSurfaced(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.expectBuilds([]byte("bin"), nil)
	f.expectPublish("v1.4.0", "Version 1.4.0", 4)

	res, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.4.0")

	var pubErr *publish.PublishError
	require.ErrorAs(t, err, &pubErr)
	require.Len(t, pubErr.Uploaded, 3)
	require.Equal(t, []string{"Kiln-1.4.0.tar.xz", "Kiln-1.4.0.tar.xz.sha256", "Kiln-1.4.0.tar.xz.sha256.sig"}, pubErr.Missing)
	require.Equal(t, draft.HTMLURL, res.Release.HTMLURL)

	run, err := f.runs.FindByGUID("run-1")
	require.NoError(t, err)
	require.Equal(t, pipeline.StepPublished, run.FailedStep())
	require.Equal(t, pipeline.StepSigned, run.LastStep())
}

func TestRun_StaleArtifactsAreRemoved(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("dist/1.4.0/kiln-cli-1.4.0.x86_64.tar.xz", "stale")
	f.write("CHANGELOG.md", changelogAfter)
	f.expectBuilds([]byte("fresh"), nil)
	f.expectPublish("v1.4.0", "Version 1.4.0", 0)

	res, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.4.0")
	require.NoError(t, err)
	require.NotEqual(t, "stale", f.read("dist/1.4.0/kiln-cli-1.4.0.x86_64.tar.xz"))
	require.Len(t, res.Assets, 6)
}

func TestRun_ConsecutiveReleases(t *testing.T) {
	requireGit(t)
	f := newFixture(t)
	f.write("CHANGELOG.md", changelogAfter)
	f.expectBuilds([]byte("bin"), nil)
	f.expectPublish("v1.4.0", "Version 1.4.0", 0)

	first, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.4.0")
	require.NoError(t, err)
	require.DirExists(t, first.DistDir)

	// The previous release's artifacts are the only thing left behind.
	_, err = pipeline.Validate(f.cfg, f.repo, "1.5.0")
	require.NoError(t, err)

	f.write("CHANGELOG.md", "# Changelog\n\n## 1.5.0\n- Added jira export\n\n"+changelogAfter[len("# Changelog\n\n"):])
	f.expectPublish("v1.5.0", "Version 1.5.0", 0)

	second, err := f.pipeline(pipeline.Options{AssumeYes: true}).Run(context.Background(), "1.5.0")
	require.NoError(t, err)
	require.Equal(t, "release/1.5.0", second.Branch)
	require.Equal(t, "run-2", second.RunID)
	require.Equal(t, "## 1.5.0\n- Added jira export", second.Notes.String())
	require.Contains(t, f.fileAt("release/1.5.0", "cli/Cargo.toml"), `version = "1.5.0"`)
	require.FileExists(t, filepath.Join(first.DistDir, "Kiln-1.4.0.tar.xz"))

	_, err = f.remote.Reference(plumbing.NewTagReferenceName("v1.5.0"), false)
	require.NoError(t, err)
	run, err := f.runs.FindByGUID("run-2")
	require.NoError(t, err)
	require.Equal(t, rundomain.RunSucceeded, run.State())
}

package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/simplybusiness/kiln-release/internal/log"
)

// Runner executes a command in dir.
type Runner func(ctx context.Context, dir, name string, args ...string) error

// ExecRunner runs commands as child processes with the caller's environment.
func ExecRunner(stdout, stderr io.Writer) Runner {
	return func(ctx context.Context, dir, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Env = os.Environ()
		cmd.Dir = dir
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		log.Debug(log.CatBuild, "Running", "dir", dir, "cmd", name+" "+strings.Join(args, " "))
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil
	}
}

// DefaultLockfileCommand refreshes Cargo.lock; {manifest} is replaced with
// the manifest path.
var DefaultLockfileCommand = []string{"cargo", "check", "--manifest-path", "{manifest}", "--all-features"}

// ExecBuilder implements Builder with the cargo and docker command-line tools.
type ExecBuilder struct {
	run       Runner
	cargo     string
	container string
	lockfile  []string
}

// Compile-time check that ExecBuilder implements Builder.
var _ Builder = (*ExecBuilder)(nil)

// ExecOption configures an ExecBuilder.
type ExecOption func(*ExecBuilder)

// WithRunner replaces the process runner.
func WithRunner(r Runner) ExecOption {
	return func(b *ExecBuilder) { b.run = r }
}

// WithCargo sets the cargo binary.
func WithCargo(bin string) ExecOption {
	return func(b *ExecBuilder) { b.cargo = bin }
}

// WithContainerTool sets the image build tool (docker or podman).
func WithContainerTool(bin string) ExecOption {
	return func(b *ExecBuilder) { b.container = bin }
}

// WithLockfileCommand sets the lockfile refresh command template.
func WithLockfileCommand(argv []string) ExecOption {
	return func(b *ExecBuilder) {
		if len(argv) > 0 {
			b.lockfile = argv
		}
	}
}

// NewExecBuilder creates a builder that writes tool output to stderr.
func NewExecBuilder(opts ...ExecOption) *ExecBuilder {
	b := &ExecBuilder{
		run:       ExecRunner(os.Stderr, os.Stderr),
		cargo:     "cargo",
		container: "docker",
		lockfile:  DefaultLockfileCommand,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CrossBuild runs "cargo make <task>", or a plain release build for the
// target when no task is configured.
func (b *ExecBuilder) CrossBuild(ctx context.Context, spec CrossBuildSpec) (string, error) {
	args := []string{"make", spec.Task}
	binary := spec.Binary
	if spec.Task == "" {
		args = []string{"build", "--release", "--target", spec.Target}
		if binary == "" {
			binary = filepath.Join("target", spec.Target, "release", spec.Component)
		}
	}
	if err := b.run(ctx, spec.Dir, b.cargo, args...); err != nil {
		return "", err
	}

	bin := filepath.Join(spec.Dir, filepath.FromSlash(binary))
	if _, err := os.Stat(bin); err != nil {
		return "", fmt.Errorf("build produced no binary at %s: %w", bin, err)
	}
	return bin, nil
}

// BuildImage runs "<tool> build --tag <ref> [--label k=v]... <context>".
func (b *ExecBuilder) BuildImage(ctx context.Context, spec ImageSpec) (Image, error) {
	args := []string{"build", "--tag", spec.Ref}
	keys := make([]string, 0, len(spec.Labels))
	for k := range spec.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--label", k+"="+spec.Labels[k])
	}
	args = append(args, spec.Context)

	if err := b.run(ctx, spec.Context, b.container, args...); err != nil {
		return nil, err
	}
	return &execImage{b: b, ref: spec.Ref, dir: spec.Context}, nil
}

// RefreshLockfile runs the lockfile command next to the manifest.
func (b *ExecBuilder) RefreshLockfile(ctx context.Context, manifestPath string) error {
	argv := make([]string, len(b.lockfile))
	for i, a := range b.lockfile {
		argv[i] = strings.ReplaceAll(a, "{manifest}", manifestPath)
	}
	return b.run(ctx, filepath.Dir(manifestPath), argv[0], argv[1:]...)
}

type execImage struct {
	b   *ExecBuilder
	ref string
	dir string
}

func (i *execImage) Ref() string { return i.ref }

// AddTag runs "<tool> tag <ref> <repository>:<tag>".
func (i *execImage) AddTag(ctx context.Context, tag string) error {
	repo, _ := SplitRef(i.ref)
	return i.b.run(ctx, i.dir, i.b.container, "tag", i.ref, repo+":"+tag)
}

// SplitRef splits "registry:5000/kiln/name:tag" into repository and tag.
// The tag is empty when ref has none.
func SplitRef(ref string) (repository, tag string) {
	slash := strings.LastIndex(ref, "/")
	colon := strings.LastIndex(ref, ":")
	if colon <= slash {
		return ref, ""
	}
	return ref[:colon], ref[colon+1:]
}

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,127}$`)

// ValidTag reports whether tag is usable as an image tag.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

package build

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

type call struct {
	dir  string
	argv string
}

// recorder is a Runner that records every command and fails those whose
// command line contains failOn.
type recorder struct {
	mu     sync.Mutex
	calls  []call
	failOn string
}

func (r *recorder) run(_ context.Context, dir, name string, args ...string) error {
	argv := strings.Join(append([]string{name}, args...), " ")
	r.mu.Lock()
	r.calls = append(r.calls, call{dir: dir, argv: argv})
	r.mu.Unlock()
	if r.failOn != "" && strings.Contains(argv, r.failOn) {
		return errors.New("exit status 101")
	}
	return nil
}

func (r *recorder) argvs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.argv
	}
	return out
}

func touch(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
}

func TestExecBuilder_CrossBuildWithTask(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "target/x86_64-unknown-linux-musl/release/data-collector"), "ELF")

	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run))
	bin, err := b.CrossBuild(context.Background(), CrossBuildSpec{
		Component: "data-collector",
		Dir:       dir,
		Task:      "musl-build",
		Target:    "x86_64-unknown-linux-musl",
		Binary:    "target/x86_64-unknown-linux-musl/release/data-collector",
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "target/x86_64-unknown-linux-musl/release/data-collector"), bin)
	require.Equal(t, []string{"cargo make musl-build"}, rec.argvs())
	require.Equal(t, dir, rec.calls[0].dir)
}

func TestExecBuilder_CrossBuildWithoutTask(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "target/aarch64-unknown-linux-musl/release/report-parser"), "ELF")

	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run), WithCargo("/opt/cargo/bin/cargo"))
	bin, err := b.CrossBuild(context.Background(), CrossBuildSpec{
		Component: "report-parser",
		Dir:       dir,
		Target:    "aarch64-unknown-linux-musl",
	})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(bin, "release/report-parser"))
	require.Equal(t, []string{"/opt/cargo/bin/cargo build --release --target aarch64-unknown-linux-musl"}, rec.argvs())
}

func TestExecBuilder_CrossBuildMissingBinary(t *testing.T) {
	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run))
	_, err := b.CrossBuild(context.Background(), CrossBuildSpec{
		Component: "slack-connector",
		Dir:       t.TempDir(),
		Task:      "musl-build",
		Binary:    "target/release/slack-connector",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no binary")
}

func TestExecBuilder_BuildImageAndTag(t *testing.T) {
	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run), WithContainerTool("podman"))
	img, err := b.BuildImage(context.Background(), ImageSpec{
		Context: "/src/kiln/data-collector",
		Ref:     "kiln/data-collector:1.4.0",
		Labels: map[string]string{
			"org.opencontainers.image.version":  "1.4.0",
			"org.opencontainers.image.revision": "abc123",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "kiln/data-collector:1.4.0", img.Ref())
	require.NoError(t, img.AddTag(context.Background(), "latest"))

	require.Equal(t, []string{
		"podman build --tag kiln/data-collector:1.4.0" +
			" --label org.opencontainers.image.revision=abc123" +
			" --label org.opencontainers.image.version=1.4.0 /src/kiln/data-collector",
		"podman tag kiln/data-collector:1.4.0 kiln/data-collector:latest",
	}, rec.argvs())
}

func TestExecBuilder_RefreshLockfile(t *testing.T) {
	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run))
	require.NoError(t, b.RefreshLockfile(context.Background(), "/src/kiln/report-parser/Cargo.toml"))
	require.Equal(t, []string{
		"cargo check --manifest-path /src/kiln/report-parser/Cargo.toml --all-features",
	}, rec.argvs())
	require.Equal(t, "/src/kiln/report-parser", rec.calls[0].dir)

	rec = &recorder{}
	b = NewExecBuilder(WithRunner(rec.run), WithLockfileCommand([]string{"cargo", "update", "-w", "--manifest-path", "{manifest}"}))
	require.NoError(t, b.RefreshLockfile(context.Background(), "/src/Cargo.toml"))
	require.Equal(t, []string{"cargo update -w --manifest-path /src/Cargo.toml"}, rec.argvs())
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref, repo, tag string
	}{
		{"kiln/data-collector:1.4.0", "kiln/data-collector", "1.4.0"},
		{"kiln/data-collector", "kiln/data-collector", ""},
		{"registry:5000/kiln/cli", "registry:5000/kiln/cli", ""},
		{"registry:5000/kiln/cli:latest", "registry:5000/kiln/cli", "latest"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			repo, tag := SplitRef(tt.ref)
			assert.Equal(t, tt.repo, repo)
			assert.Equal(t, tt.tag, tag)
		})
	}
}

func kilnJobs(t *testing.T, root string) []ImageJob {
	t.Helper()
	spec := func(name string) CrossBuildSpec {
		rel := "target/x86_64-unknown-linux-musl/release/" + name
		touch(t, filepath.Join(root, name, rel), "ELF "+name)
		return CrossBuildSpec{Component: name, Dir: filepath.Join(root, name), Task: "musl-build", Target: "x86_64-unknown-linux-musl", Binary: rel}
	}
	forwarder := spec("data-forwarder")
	forwarder.Task = "build-data-forwarder-musl"
	helperCtx := filepath.Join(root, "tool-images/ruby/bundler-audit")
	require.NoError(t, os.MkdirAll(helperCtx, 0o755))

	return []ImageJob{
		{Name: "data-collector", Repository: "kiln/data-collector", Binary: spec("data-collector"), Context: filepath.Join(root, "data-collector")},
		{Name: "report-parser", Repository: "kiln/report-parser", Binary: spec("report-parser"), Context: filepath.Join(root, "report-parser")},
		{Name: "bundler-audit", Repository: "kiln/bundler-audit", Binary: forwarder, Context: helperCtx, CopyBinary: true},
	}
}

func TestBuildImages_TagsExactAliasFirst(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run))

	built, err := BuildImages(context.Background(), b, kilnJobs(t, root), []string{"1.4.0", "1.4", "1", "latest"}, 1)
	require.NoError(t, err)
	require.Len(t, built, 3)

	require.Equal(t, "data-collector", built[0].Name)
	require.Equal(t, "kiln/data-collector:1.4.0", built[0].Ref)
	require.Equal(t, []string{
		"kiln/data-collector:1.4.0", "kiln/data-collector:1.4", "kiln/data-collector:1", "kiln/data-collector:latest",
	}, built[0].Refs)

	argvs := rec.argvs()
	builds := 0
	for _, a := range argvs {
		if strings.Contains(a, "docker build") {
			builds++
		}
	}
	require.Equal(t, 3, builds, "each image is built once regardless of alias count")
	require.Contains(t, argvs, "docker tag kiln/report-parser:1.4.0 kiln/report-parser:latest")
	require.Contains(t, argvs, "cargo make build-data-forwarder-musl")
}

func TestBuildImages_HelperImageGetsBinaryCopy(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	copied := filepath.Join(root, "tool-images/ruby/bundler-audit/data-forwarder")

	var seen []byte
	var mode os.FileMode
	run := func(ctx context.Context, dir, name string, args ...string) error {
		if strings.Contains(strings.Join(args, " "), "tool-images/ruby/bundler-audit") {
			seen, _ = os.ReadFile(copied)
			if fi, err := os.Stat(copied); err == nil {
				mode = fi.Mode().Perm()
			}
		}
		return rec.run(ctx, dir, name, args...)
	}
	b := NewExecBuilder(WithRunner(run))

	_, err := BuildImages(context.Background(), b, kilnJobs(t, root), []string{"0.9.0", "0.9", "latest"}, 2)
	require.NoError(t, err)

	require.Equal(t, "ELF data-forwarder", string(seen), "the binary is in the context while the image builds")
	require.Equal(t, os.FileMode(0o755), mode)
	require.NoFileExists(t, copied, "the copy is removed once the image is built")
}

func TestValidTag(t *testing.T) {
	testCases := []struct {
		tag  string
		want bool
	}{
		{"1.4.0", true},
		{"1.4", true},
		{"latest", true},
		{"1.5.0-rc.1", true},
		{"1.5.0-rc.1+build.7", false},
		{"-leading-dash", false},
		{".hidden", false},
		{"", false},
		{strings.Repeat("a", 128), true},
		{strings.Repeat("a", 129), false},
	}
	for _, tt := range testCases {
		t.Run(tt.tag, func(t *testing.T) {
			require.Equal(t, tt.want, ValidTag(tt.tag))
		})
	}
}

func TestBuildImages_SharedComponentBuiltOnce(t *testing.T) {
	root := t.TempDir()
	jobs := kilnJobs(t, root)
	jobs = append(jobs, ImageJob{
		Name: "data-forwarder", Repository: "kiln/data-forwarder", Binary: jobs[2].Binary, Context: jobs[2].Binary.Dir,
	})
	rec := &recorder{}
	b := NewExecBuilder(WithRunner(rec.run))

	_, err := BuildImages(context.Background(), b, jobs, []string{"1.4.0", "latest"}, 4)
	require.NoError(t, err)

	n := 0
	for _, a := range rec.argvs() {
		if a == "cargo make build-data-forwarder-musl" {
			n++
		}
	}
	require.Equal(t, 1, n)
}

func TestBuildImages_FailureAborts(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
		step   string
	}{
		{"cross build", "musl-build", "cross-build"},
		{"image build", "build --tag kiln/report-parser", "image"},
		{"alias tag", "kiln/data-collector:latest", "tag latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			rec := &recorder{failOn: tt.failOn}
			b := NewExecBuilder(WithRunner(rec.run))

			built, err := BuildImages(context.Background(), b, kilnJobs(t, root), []string{"1.4.0", "1.4", "1", "latest"}, 1)
			require.Error(t, err)
			require.Nil(t, built)

			var be *BuildError
			require.ErrorAs(t, err, &be)
			require.Equal(t, tt.step, be.Step)
		})
	}
}

func TestBuildImages_NoAliases(t *testing.T) {
	_, err := BuildImages(context.Background(), NewExecBuilder(), nil, nil, 1)
	require.Error(t, err)
}

func readTarXz(t *testing.T, path string) map[string]*tar.Header {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	xr, err := xz.NewReader(f)
	require.NoError(t, err)

	headers := make(map[string]*tar.Header)
	tr := tar.NewReader(xr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		_, err = io.Copy(io.Discard, tr)
		require.NoError(t, err)
		headers[hdr.Name] = hdr
	}
	return headers
}

func TestPackageCLI(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "kiln-cli")
	touch(t, bin, "kiln cli binary")
	mtime := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	pkg := CLIPackage{Binary: bin, OutDir: dir, Tool: "kiln-cli", Version: "1.4.0", Arch: "x86_64", ModTime: mtime}
	out, err := PackageCLI(pkg)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "kiln-cli-1.4.0.x86_64.tar.xz"), out)

	headers := readTarXz(t, out)
	require.Len(t, headers, 1)
	hdr := headers["kiln-cli-1.4.0.x86_64"]
	require.NotNil(t, hdr)
	require.Equal(t, int64(0o755), hdr.Mode)
	require.Equal(t, int64(len("kiln cli binary")), hdr.Size)
	require.True(t, hdr.ModTime.Equal(mtime))
}

func TestPackageCLI_Reproducible(t *testing.T) {
	src := t.TempDir()
	bin := filepath.Join(src, "kiln-cli")
	touch(t, bin, strings.Repeat("reproducible ", 1000))
	mtime := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	var outputs [][]byte
	for range 2 {
		pkg := CLIPackage{Binary: bin, OutDir: t.TempDir(), Tool: "kiln-cli", Version: "1.4.0", Arch: "x86_64", ModTime: mtime}
		out, err := PackageCLI(pkg)
		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}
	require.True(t, bytes.Equal(outputs[0], outputs[1]))
}

func TestPackageCLI_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "kiln-cli")
	touch(t, bin, "x")
	touch(t, filepath.Join(dir, "kiln-cli-1.4.0.x86_64.tar.xz"), "stale")

	_, err := PackageCLI(CLIPackage{Binary: bin, OutDir: dir, Tool: "kiln-cli", Version: "1.4.0", Arch: "x86_64"})
	require.ErrorIs(t, err, os.ErrExist)

	stale, err := os.ReadFile(filepath.Join(dir, "kiln-cli-1.4.0.x86_64.tar.xz"))
	require.NoError(t, err)
	require.Equal(t, "stale", string(stale))
}

func TestPackageSource(t *testing.T) {
	dir := t.TempDir()
	out, err := PackageSource(dir, "Kiln", "1.4.0", func(w io.Writer) error {
		tw := tar.NewWriter(w)
		body := "[package]\nname = \"kiln_lib\"\n"
		if err := tw.WriteHeader(&tar.Header{Name: "kiln_lib/Cargo.toml", Mode: 0o644, Size: int64(len(body))}); err != nil {
			return err
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			return err
		}
		return tw.Close()
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Kiln-1.4.0.tar.xz"), out)
	require.Contains(t, readTarXz(t, out), "kiln_lib/Cargo.toml")
}

func TestPackageSource_FailureRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	_, err := PackageSource(dir, "Kiln", "1.4.0", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("tree walk failed")
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "tree walk failed")

	_, statErr := os.Stat(filepath.Join(dir, "Kiln-1.4.0.tar.xz"))
	require.True(t, os.IsNotExist(statErr))
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "kiln-cli-1.4.0.x86_64", CLIBinaryName("kiln-cli", "1.4.0", "x86_64"))
	assert.Equal(t, "kiln-cli-1.4.0-rc.1.x86_64.tar.xz", CLITarballName("kiln-cli", "1.4.0-rc.1", "x86_64"))
	assert.Equal(t, "Kiln-0.9.0.tar.xz", SourceTarballName("Kiln", "0.9.0"))
}

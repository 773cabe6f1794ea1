// Package build drives native cross-compilation and container image builds
// for release components, and packages the results as tarballs.
package build

import "context"

// CrossBuildSpec describes one release-mode, statically linked build.
type CrossBuildSpec struct {
	Component string // Component name, for errors and logs
	Dir       string // Absolute directory the build runs in
	Task      string // Build task, e.g. "musl-build"
	Target    string // Target triple, e.g. "x86_64-unknown-linux-musl"
	Binary    string // Output path relative to Dir
}

// ImageSpec describes one container image build.
type ImageSpec struct {
	Context string            // Absolute build context directory
	Ref     string            // Primary reference, repository:exact-version
	Labels  map[string]string // OCI labels applied at build time
}

// Builder is the native and container build backend.
type Builder interface {
	// CrossBuild runs the build and returns the absolute path of the binary.
	CrossBuild(ctx context.Context, spec CrossBuildSpec) (string, error)
	// BuildImage builds an image once, tagged with spec.Ref.
	BuildImage(ctx context.Context, spec ImageSpec) (Image, error)
	// RefreshLockfile brings a manifest's lockfile in line with the manifest.
	RefreshLockfile(ctx context.Context, manifestPath string) error
}

// Image is a built image held in the local image store.
type Image interface {
	// Ref returns the primary reference the image was built with.
	Ref() string
	// AddTag applies an extra tag to the same image without rebuilding it.
	AddTag(ctx context.Context, tag string) error
}

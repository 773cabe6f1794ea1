package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/simplybusiness/kiln-release/internal/log"
)

// ImageJob is one container image to produce from a component binary.
type ImageJob struct {
	Name       string            // Image name, e.g. "bundler-audit"
	Repository string            // Image repository, e.g. "kiln/bundler-audit"
	Binary     CrossBuildSpec    // Build that produces the binary the image packages
	Context    string            // Absolute build context
	CopyBinary bool              // Copy the binary into Context before building
	Labels     map[string]string // OCI labels
}

// BuiltImage is the outcome of one ImageJob.
type BuiltImage struct {
	Name   string
	Ref    string   // Primary reference, tagged at build time
	Refs   []string // Primary reference followed by every alias reference
	Binary string   // Binary the image was built from
}

// BuildImages cross-builds every distinct component the jobs need, then
// builds each image once tagged with aliases[0] and applies the remaining
// aliases as extra tags. At most concurrency builds run at a time and the
// first failure cancels the rest. Results are in job order.
func BuildImages(ctx context.Context, b Builder, jobs []ImageJob, aliases []string, concurrency int) ([]BuiltImage, error) {
	if len(aliases) == 0 {
		return nil, fmt.Errorf("no image tags to apply")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	binaries, err := crossBuildAll(ctx, b, jobs, concurrency)
	if err != nil {
		return nil, err
	}

	results := make([]BuiltImage, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			built, err := buildImage(gctx, b, job, binaries[job.Binary.Component], aliases)
			if err != nil {
				return err
			}
			results[i] = built
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func crossBuildAll(ctx context.Context, b Builder, jobs []ImageJob, concurrency int) (map[string]string, error) {
	var (
		mu       sync.Mutex
		binaries = make(map[string]string)
		seen     = make(map[string]bool)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, job := range jobs {
		spec := job.Binary
		if seen[spec.Component] {
			continue
		}
		seen[spec.Component] = true
		g.Go(func() error {
			bin, err := CrossBuild(gctx, b, spec)
			if err != nil {
				return err
			}
			mu.Lock()
			binaries[spec.Component] = bin
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return binaries, nil
}

// CrossBuild runs one native build and wraps failures in a BuildError.
func CrossBuild(ctx context.Context, b Builder, spec CrossBuildSpec) (string, error) {
	log.Info(log.CatBuild, "Cross-building", "component", spec.Component, "target", spec.Target)
	bin, err := b.CrossBuild(ctx, spec)
	if err != nil {
		log.ErrorErr(log.CatBuild, "Cross-build failed", err, "component", spec.Component)
		return "", &BuildError{Component: spec.Component, Step: "cross-build", Err: err}
	}
	return bin, nil
}

func buildImage(ctx context.Context, b Builder, job ImageJob, binary string, aliases []string) (BuiltImage, error) {
	if job.CopyBinary {
		dst := filepath.Join(job.Context, filepath.Base(binary))
		if err := copyFile(binary, dst); err != nil {
			return BuiltImage{}, &BuildError{Component: job.Name, Step: "copy binary", Err: err}
		}
		// The copy only feeds the build context and must not dirty the tree.
		defer func() {
			if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
				log.Warn(log.CatBuild, "Could not remove copied binary", "path", dst, "error", err)
			}
		}()
	}

	ref := job.Repository + ":" + aliases[0]
	log.Info(log.CatBuild, "Building image", "image", ref, "context", job.Context)
	img, err := b.BuildImage(ctx, ImageSpec{Context: job.Context, Ref: ref, Labels: job.Labels})
	if err != nil {
		return BuiltImage{}, &BuildError{Component: job.Name, Step: "image", Err: err}
	}

	refs := []string{img.Ref()}
	for _, alias := range aliases[1:] {
		if err := img.AddTag(ctx, alias); err != nil {
			return BuiltImage{}, &BuildError{Component: job.Name, Step: "tag " + alias, Err: err}
		}
		refs = append(refs, job.Repository+":"+alias)
	}
	log.Info(log.CatBuild, "Image ready", "image", ref, "tags", len(refs))
	return BuiltImage{Name: job.Name, Ref: img.Ref(), Refs: refs, Binary: binary}, nil
}

// copyFile copies src to dst, keeping the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

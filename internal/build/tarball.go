package build

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/simplybusiness/kiln-release/internal/log"
)

// TarballSuffix is the extension of every release tarball.
const TarballSuffix = ".tar.xz"

// CLIBinaryName returns the versioned binary name, "<tool>-<version>.<arch>".
func CLIBinaryName(tool, version, arch string) string {
	return fmt.Sprintf("%s-%s.%s", tool, version, arch)
}

// CLITarballName returns "<tool>-<version>.<arch>.tar.xz".
func CLITarballName(tool, version, arch string) string {
	return CLIBinaryName(tool, version, arch) + TarballSuffix
}

// SourceTarballName returns "<project>-<version>.tar.xz".
func SourceTarballName(project, version string) string {
	return project + "-" + version + TarballSuffix
}

// CLIPackage describes the CLI tarball to produce.
type CLIPackage struct {
	Binary  string    // Compiled binary
	OutDir  string    // Directory the tarball is written to
	Tool    string    // e.g. "kiln-cli"
	Version string    // Canonical version string
	Arch    string    // e.g. "x86_64"
	ModTime time.Time // Timestamp recorded in the archive
}

// PackageCLI archives the CLI binary, under its versioned name, into
// OutDir/<tool>-<version>.<arch>.tar.xz and returns the tarball path.
// Header fields that vary between machines are fixed so the archive
// depends only on the binary and ModTime.
func PackageCLI(p CLIPackage) (string, error) {
	name := CLIBinaryName(p.Tool, p.Version, p.Arch)
	out := filepath.Join(p.OutDir, name+TarballSuffix)

	f, err := os.Open(p.Binary)
	if err != nil {
		return "", &BuildError{Component: p.Tool, Step: "package", Err: err}
	}
	defer func() { _ = f.Close() }()
	fi, err := f.Stat()
	if err != nil {
		return "", &BuildError{Component: p.Tool, Step: "package", Err: err}
	}

	err = WriteXz(out, func(w io.Writer) error {
		tw := tar.NewWriter(w)
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o755,
			Size:     fi.Size(),
			ModTime:  p.ModTime.UTC().Truncate(time.Second),
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		return tw.Close()
	})
	if err != nil {
		return "", &BuildError{Component: p.Tool, Step: "package", Err: err}
	}
	log.Info(log.CatBuild, "Packaged CLI", "tarball", out, "binary", name)
	return out, nil
}

// ArchiveFunc streams an uncompressed tar archive to w.
type ArchiveFunc func(w io.Writer) error

// PackageSource compresses the tar stream produced by archive into
// outDir/<project>-<version>.tar.xz and returns its path.
func PackageSource(outDir, project, version string, archive ArchiveFunc) (string, error) {
	out := filepath.Join(outDir, SourceTarballName(project, version))
	if err := WriteXz(out, archive); err != nil {
		return "", &BuildError{Component: project, Step: "source archive", Err: err}
	}
	log.Info(log.CatBuild, "Packaged source", "tarball", out)
	return out, nil
}

// WriteXz creates path, which must not exist, and writes the xz-compressed
// output of fill to it. The partial file is removed if fill fails.
func WriteXz(path string, fill func(w io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	xw, err := xz.NewWriter(f)
	if err != nil {
		return err
	}
	if err := fill(xw); err != nil {
		return errors.Join(err, xw.Close())
	}
	return xw.Close()
}

// Package config provides configuration types and defaults for kiln-release.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Component kinds.
const (
	KindLibrary = "library"
	KindService = "service"
	KindCLI     = "cli"
)

// Config holds all configuration options for kiln-release.
type Config struct {
	Project    ProjectConfig     `mapstructure:"project"`
	Components []ComponentConfig `mapstructure:"components"`
	Images     []ImageConfig     `mapstructure:"images"`
	CLI        CLIConfig         `mapstructure:"cli"`
	Git        GitConfig         `mapstructure:"git"`
	Build      BuildConfig       `mapstructure:"build"`
	Signing    SigningConfig     `mapstructure:"signing"`
	Publish    PublishConfig     `mapstructure:"publish"`
	Tracing    TracingConfig     `mapstructure:"tracing"`
}

// ProjectConfig describes the repository being released.
type ProjectConfig struct {
	Name         string   `mapstructure:"name"`          // Source tarball prefix, e.g. "Kiln"
	Changelog    string   `mapstructure:"changelog"`     // Repository-relative changelog path
	AllowedPaths []string `mapstructure:"allowed_paths"` // Working copy changes tolerated before a run
	RequireNewer bool     `mapstructure:"require_newer"` // Version must exceed the highest v* tag
	DistDir      string   `mapstructure:"dist_dir"`      // Artifact output, per version
}

// ComponentConfig is one versioned sub-project.
type ComponentConfig struct {
	Name     string `mapstructure:"name"`
	Kind     string `mapstructure:"kind"`     // library, service or cli
	Path     string `mapstructure:"path"`     // Repository-relative directory
	Manifest string `mapstructure:"manifest"` // Defaults to <path>/Cargo.toml
	Lockfile string `mapstructure:"lockfile"` // Defaults to <path>/Cargo.lock
	Task     string `mapstructure:"task"`     // cargo-make task for the release build
	Binary   string `mapstructure:"binary"`   // Build output, relative to path
}

// ImageConfig is one container image built from a component binary.
type ImageConfig struct {
	Name       string `mapstructure:"name"`
	Repository string `mapstructure:"repository"`  // e.g. kiln/data-collector
	Component  string `mapstructure:"component"`   // Component whose binary the image packages
	Context    string `mapstructure:"context"`     // Repository-relative build context
	CopyBinary bool   `mapstructure:"copy_binary"` // Copy the binary into the context first
}

// CLIConfig describes the packaged command-line tool.
type CLIConfig struct {
	Component string `mapstructure:"component"`
	Tool      string `mapstructure:"tool"` // Tarball prefix, e.g. kiln-cli
	Arch      string `mapstructure:"arch"`
}

// GitConfig holds version control settings.
type GitConfig struct {
	Remote           string `mapstructure:"remote"`
	PushLibraryEarly bool   `mapstructure:"push_library_early"` // Push after the library commit so dependents resolve its rev
}

// BuildConfig holds native and image build settings.
type BuildConfig struct {
	Target          string   `mapstructure:"target"`
	Concurrency     int      `mapstructure:"concurrency"`
	Cargo           string   `mapstructure:"cargo"`
	ContainerTool   string   `mapstructure:"container_tool"`
	LockfileCommand []string `mapstructure:"lockfile_command"`
}

// SigningConfig selects the tag and artifact signing identity.
type SigningConfig struct {
	KeyID   string `mapstructure:"key_id"`  // Defaults to git user.signingkey
	Keyring string `mapstructure:"keyring"` // Armored secret keyring; exported from gpg when empty
	GPG     string `mapstructure:"gpg"`
}

// PublishConfig holds release hosting settings.
type PublishConfig struct {
	Repository string `mapstructure:"repository"` // owner/name
	Token      string `mapstructure:"token"`
	BaseURL    string `mapstructure:"base_url"` // GitHub Enterprise API, optional
	Title      string `mapstructure:"title"`    // {version} is replaced
}

// TracingConfig selects where pipeline spans are exported.
type TracingConfig struct {
	File         string `mapstructure:"file"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Insecure     bool   `mapstructure:"insecure"`
}

// ManifestPath returns the component's manifest, repository-relative.
func (c ComponentConfig) ManifestPath() string {
	if c.Manifest != "" {
		return c.Manifest
	}
	return path.Join(c.Path, "Cargo.toml")
}

// LockfilePath returns the component's lockfile, repository-relative.
func (c ComponentConfig) LockfilePath() string {
	if c.Lockfile != "" {
		return c.Lockfile
	}
	return path.Join(c.Path, "Cargo.lock")
}

// Library returns the shared library component.
func (c Config) Library() (ComponentConfig, bool) {
	return c.firstOfKind(KindLibrary)
}

// Services returns the service components in release order.
func (c Config) Services() []ComponentConfig {
	var out []ComponentConfig
	for _, comp := range c.Components {
		if comp.Kind == KindService {
			out = append(out, comp)
		}
	}
	return out
}

// Component returns the component called name.
func (c Config) Component(name string) (ComponentConfig, bool) {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return ComponentConfig{}, false
}

// ReleaseTitle renders the release title for version.
func (c Config) ReleaseTitle(version string) string {
	return strings.ReplaceAll(c.Publish.Title, "{version}", version)
}

func (c Config) firstOfKind(kind string) (ComponentConfig, bool) {
	for _, comp := range c.Components {
		if comp.Kind == kind {
			return comp, true
		}
	}
	return ComponentConfig{}, false
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error

	if c.Project.Changelog == "" {
		errs = append(errs, errors.New("project.changelog is required"))
	}
	for _, p := range c.Project.AllowedPaths {
		if _, err := path.Match(strings.TrimSuffix(p, "/**"), ""); err != nil {
			errs = append(errs, fmt.Errorf("project.allowed_paths: %q: %w", p, err))
		}
	}

	names := make(map[string]bool)
	libraries := 0
	for i, comp := range c.Components {
		switch {
		case comp.Name == "":
			errs = append(errs, fmt.Errorf("component %d: name is required", i))
			continue
		case names[comp.Name]:
			errs = append(errs, fmt.Errorf("component %s: duplicate name", comp.Name))
		}
		names[comp.Name] = true

		switch comp.Kind {
		case KindLibrary:
			libraries++
		case KindService, KindCLI:
		default:
			errs = append(errs, fmt.Errorf("component %s: unknown kind %q", comp.Name, comp.Kind))
		}
		if comp.Path == "" {
			errs = append(errs, fmt.Errorf("component %s: path is required", comp.Name))
		}
	}
	if libraries != 1 {
		errs = append(errs, fmt.Errorf("exactly one library component is required, found %d", libraries))
	}

	for i, img := range c.Images {
		if img.Name == "" || img.Repository == "" {
			errs = append(errs, fmt.Errorf("image %d: name and repository are required", i))
			continue
		}
		comp, ok := c.Component(img.Component)
		if !ok {
			errs = append(errs, fmt.Errorf("image %s: unknown component %q", img.Name, img.Component))
			continue
		}
		if comp.Kind == KindLibrary {
			errs = append(errs, fmt.Errorf("image %s: library %s has no binary", img.Name, comp.Name))
		}
	}

	if cli, ok := c.Component(c.CLI.Component); !ok || cli.Kind != KindCLI {
		errs = append(errs, fmt.Errorf("cli.component %q must name a cli component", c.CLI.Component))
	}
	if c.CLI.Tool == "" || c.CLI.Arch == "" {
		errs = append(errs, errors.New("cli.tool and cli.arch are required"))
	}

	if c.Build.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("build.concurrency must be at least 1, got %d", c.Build.Concurrency))
	}
	if c.Git.Remote == "" {
		errs = append(errs, errors.New("git.remote is required"))
	}
	if c.Publish.Repository == "" {
		errs = append(errs, errors.New("publish.repository is required"))
	}

	return errors.Join(errs...)
}

// Defaults returns the configuration for the Kiln repository layout.
func Defaults() Config {
	const musl = "x86_64-unknown-linux-musl"
	service := func(name string) ComponentConfig {
		return ComponentConfig{
			Name:   name,
			Kind:   KindService,
			Path:   name,
			Task:   "musl-build",
			Binary: "target/" + musl + "/release/" + name,
		}
	}
	forwarder := service("data-forwarder")
	forwarder.Task = "build-data-forwarder-musl"
	forwarder.Binary = "../bin/data-forwarder"

	return Config{
		Project: ProjectConfig{
			Name:         "Kiln",
			Changelog:    "CHANGELOG.md",
			AllowedPaths: []string{"CHANGELOG.md", "utils/**"},
			RequireNewer: true,
			DistDir:      "dist",
		},
		Components: []ComponentConfig{
			{Name: "kiln_lib", Kind: KindLibrary, Path: "kiln_lib"},
			service("data-collector"),
			forwarder,
			service("report-parser"),
			service("slack-connector"),
			{Name: "cli", Kind: KindCLI, Path: "cli", Task: "musl-build", Binary: "target/" + musl + "/release/kiln-cli"},
		},
		Images: []ImageConfig{
			{Name: "bundler-audit", Repository: "kiln/bundler-audit", Component: "data-forwarder", Context: "tool-images/ruby/bundler-audit", CopyBinary: true},
			{Name: "data-collector", Repository: "kiln/data-collector", Component: "data-collector", Context: "data-collector"},
			{Name: "report-parser", Repository: "kiln/report-parser", Component: "report-parser", Context: "report-parser"},
			{Name: "slack-connector", Repository: "kiln/slack-connector", Component: "slack-connector", Context: "slack-connector"},
		},
		CLI: CLIConfig{Component: "cli", Tool: "kiln-cli", Arch: "x86_64"},
		Git: GitConfig{Remote: "origin", PushLibraryEarly: true},
		Build: BuildConfig{
			Target:          musl,
			Concurrency:     1,
			Cargo:           "cargo",
			ContainerTool:   "docker",
			LockfileCommand: []string{"cargo", "check", "--manifest-path", "{manifest}", "--all-features"},
		},
		Signing: SigningConfig{GPG: "gpg"},
		Publish: PublishConfig{Repository: "simplybusiness/Kiln", Title: "Version {version}"},
	}
}

// EnvKeys lists the scalar keys that can be overridden with KILN_RELEASE_*
// environment variables.
var EnvKeys = []string{
	"project.name",
	"project.changelog",
	"project.require_newer",
	"project.dist_dir",
	"git.remote",
	"git.push_library_early",
	"build.target",
	"build.concurrency",
	"build.cargo",
	"build.container_tool",
	"signing.key_id",
	"signing.keyring",
	"signing.gpg",
	"publish.repository",
	"publish.token",
	"publish.base_url",
	"publish.title",
	"tracing.file",
	"tracing.otlp_endpoint",
	"tracing.insecure",
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# kiln-release configuration

project:
  name: Kiln                 # Source tarball is <name>-<version>.tar.xz
  changelog: CHANGELOG.md
  # Changes tolerated in the working copy before a release starts.
  # Patterns use path.Match syntax; a trailing /** matches a whole directory.
  allowed_paths:
    - CHANGELOG.md
    - utils/**
  require_newer: true        # Refuse versions not above the highest v* tag
  dist_dir: dist             # Artifacts go to <dist_dir>/<version>/

# Components in release order. Exactly one library; its rev is pinned in
# every service manifest before the service version is bumped.
components:
  - name: kiln_lib
    kind: library
    path: kiln_lib
  - name: data-collector
    kind: service
    path: data-collector
    task: musl-build
    binary: target/x86_64-unknown-linux-musl/release/data-collector
  - name: data-forwarder
    kind: service
    path: data-forwarder
    task: build-data-forwarder-musl
    binary: ../bin/data-forwarder
  - name: report-parser
    kind: service
    path: report-parser
    task: musl-build
    binary: target/x86_64-unknown-linux-musl/release/report-parser
  - name: slack-connector
    kind: service
    path: slack-connector
    task: musl-build
    binary: target/x86_64-unknown-linux-musl/release/slack-connector
  - name: cli
    kind: cli
    path: cli
    task: musl-build
    binary: target/x86_64-unknown-linux-musl/release/kiln-cli

# Images are tagged <version>, <major>.<minor>, <major> (from 1.0) and latest.
images:
  - name: bundler-audit
    repository: kiln/bundler-audit
    component: data-forwarder
    context: tool-images/ruby/bundler-audit
    copy_binary: true
  - name: data-collector
    repository: kiln/data-collector
    component: data-collector
    context: data-collector
  - name: report-parser
    repository: kiln/report-parser
    component: report-parser
    context: report-parser
  - name: slack-connector
    repository: kiln/slack-connector
    component: slack-connector
    context: slack-connector

cli:
  component: cli
  tool: kiln-cli             # Tarball is <tool>-<version>.<arch>.tar.xz
  arch: x86_64

git:
  remote: origin
  push_library_early: true

build:
  target: x86_64-unknown-linux-musl
  concurrency: 1             # Image builds run in parallel above 1
  cargo: cargo
  container_tool: docker
  lockfile_command: [cargo, check, --manifest-path, "{manifest}", --all-features]

signing:
  # key_id: 0123456789ABCDEF  # Defaults to git config user.signingkey
  # keyring: ~/.gnupg/release-secret.asc
  gpg: gpg

publish:
  repository: simplybusiness/Kiln
  title: "Version {version}"
  # token is read from GITHUB_PERSONAL_ACCESS_TOKEN
  # base_url: https://github.example.com/api/v3/

tracing:
  # file: kiln-release-trace.json
  # otlp_endpoint: localhost:4317
  insecure: false
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// It refuses to overwrite an existing file.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if _, err := f.WriteString(DefaultConfigTemplate()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults(), cfg)
}

func TestDefaults_KilnLayout(t *testing.T) {
	cfg := Defaults()

	lib, ok := cfg.Library()
	require.True(t, ok)
	require.Equal(t, "kiln_lib", lib.Name)
	require.Equal(t, "kiln_lib/Cargo.toml", lib.ManifestPath())
	require.Equal(t, "kiln_lib/Cargo.lock", lib.LockfilePath())

	var services []string
	for _, s := range cfg.Services() {
		services = append(services, s.Name)
	}
	require.Equal(t, []string{"data-collector", "data-forwarder", "report-parser", "slack-connector"}, services)

	require.Equal(t, "kiln/bundler-audit", cfg.Images[0].Repository)
	require.Equal(t, "data-forwarder", cfg.Images[0].Component)
	require.True(t, cfg.Images[0].CopyBinary)
	require.Equal(t, "Version 1.4.0", cfg.ReleaseTitle("1.4.0"))
}

func TestComponent_ExplicitPaths(t *testing.T) {
	c := ComponentConfig{Name: "lib", Path: "lib", Manifest: "Cargo.toml", Lockfile: "Cargo.lock"}
	require.Equal(t, "Cargo.toml", c.ManifestPath())
	require.Equal(t, "Cargo.lock", c.LockfilePath())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no library", func(c *Config) { c.Components = c.Components[1:] }, "exactly one library component"},
		{"two libraries", func(c *Config) {
			c.Components = append(c.Components, ComponentConfig{Name: "other_lib", Kind: KindLibrary, Path: "other_lib"})
		}, "found 2"},
		{"duplicate name", func(c *Config) { c.Components[2].Name = "data-collector" }, "duplicate name"},
		{"unknown kind", func(c *Config) { c.Components[1].Kind = "daemon" }, `unknown kind "daemon"`},
		{"missing path", func(c *Config) { c.Components[1].Path = "" }, "path is required"},
		{"unknown image component", func(c *Config) { c.Images[0].Component = "bundler" }, `unknown component "bundler"`},
		{"image from library", func(c *Config) { c.Images[0].Component = "kiln_lib" }, "has no binary"},
		{"cli not a cli", func(c *Config) { c.CLI.Component = "kiln_lib" }, "must name a cli component"},
		{"zero concurrency", func(c *Config) { c.Build.Concurrency = 0 }, "build.concurrency must be at least 1"},
		{"bad allow pattern", func(c *Config) { c.Project.AllowedPaths = []string{"utils/["} }, "allowed_paths"},
		{"no remote", func(c *Config) { c.Git.Remote = "" }, "git.remote is required"},
		{"no changelog", func(c *Config) { c.Project.Changelog = "" }, "project.changelog is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Defaults()
	cfg.Build.Concurrency = 0
	cfg.Git.Remote = ""
	err := cfg.Validate()
	require.ErrorContains(t, err, "build.concurrency")
	require.ErrorContains(t, err, "git.remote")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".kiln-release.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	err = WriteDefaultConfig(path)
	require.ErrorIs(t, err, os.ErrExist)
}

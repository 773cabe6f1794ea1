package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/infrastructure/sqlite"
	"github.com/simplybusiness/kiln-release/internal/integrity"
	"github.com/simplybusiness/kiln-release/internal/paths"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_PERSONAL_ACCESS_TOKEN", "")
	t.Setenv("KILN_RELEASE_PUBLISH_TOKEN", "")
	t.Setenv("KILN_RELEASE_BUILD_CONCURRENCY", "")
}

// resetFlags puts every flag of c and its subcommands back to its default,
// since cobra keeps parsed values in package variables between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		resetFlags(rootCmd)
		cfg = config.Config{}
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	got, err := loadConfig(t.TempDir(), "")
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), got)
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, paths.ConfigFile), []byte(`
publish:
  repository: acme/Kiln
build:
  concurrency: 3
`), 0o600))

	got, err := loadConfig(root, "")
	require.NoError(t, err)
	require.Equal(t, "acme/Kiln", got.Publish.Repository)
	require.Equal(t, 3, got.Build.Concurrency)
	require.Equal(t, config.Defaults().Components, got.Components, "unset sections keep their defaults")

	t.Setenv("KILN_RELEASE_BUILD_CONCURRENCY", "4")
	t.Setenv("GITHUB_PERSONAL_ACCESS_TOKEN", "ghp_test")
	got, err = loadConfig(root, "")
	require.NoError(t, err)
	require.Equal(t, 4, got.Build.Concurrency)
	require.Equal(t, "ghp_test", got.Publish.Token)

	t.Setenv("KILN_RELEASE_PUBLISH_TOKEN", "ghp_explicit")
	got, err = loadConfig(root, "")
	require.NoError(t, err)
	require.Equal(t, "ghp_explicit", got.Publish.Token)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	_, err := loadConfig(root, filepath.Join(root, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(root, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("build:\n  concurrency: 0\n"), 0o600))
	_, err = loadConfig(root, bad)
	require.ErrorContains(t, err, "build.concurrency")
}

func TestInitCommand(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), paths.ConfigFile)

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)
	loaded, err := loadConfig(t.TempDir(), path)
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), loaded)

	_, err = execute(t, "init", "--config", path)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestExecute_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), paths.ConfigFile)

	t.Run("init with explicit config", func(t *testing.T) {
		_, err := execute(t, "init", "--config", path, "--log-level", "debug")
		require.NoError(t, err)
	})

	require.Empty(t, cfgFile)
	require.Equal(t, "info", logLevel)
	require.False(t, rootCmd.PersistentFlags().Changed("config"))
}

func TestVerifyCommand(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	entity, err := openpgp.NewEntity("Release Bot", "", "release@example.com", nil)
	require.NoError(t, err)

	artifact := filepath.Join(dir, "kiln-cli-1.4.0.x86_64.tar.xz")
	require.NoError(t, os.WriteFile(artifact, []byte("tarball"), 0o600))
	sum, err := integrity.Digest(artifact)
	require.NoError(t, err)
	hashfile := artifact + integrity.HashfileSuffix
	require.NoError(t, integrity.WriteHashfile(hashfile, sum, filepath.Base(artifact)))
	sig, err := integrity.SignFile(hashfile, &integrity.Identity{KeyID: "test", Entity: entity})
	require.NoError(t, err)

	pub, err := integrity.ArmorPublicKey(entity)
	require.NoError(t, err)
	keyring := filepath.Join(dir, "release.asc")
	require.NoError(t, os.WriteFile(keyring, pub, 0o600))

	args := []string{"verify", artifact, "--keyring", keyring, "--hashfile", hashfile, "--signature", sig}
	out, err := execute(t, args...)
	require.NoError(t, err)
	require.Contains(t, out, "kiln-cli-1.4.0.x86_64.tar.xz")
	require.Contains(t, out, "signed by Release Bot")

	require.NoError(t, os.WriteFile(artifact, []byte("tampered"), 0o600))
	_, err = execute(t, args...)
	var verr *integrity.VerificationError
	require.ErrorAs(t, err, &verr)
}

func TestPrintStatus(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	runs := db.Runs()

	var out bytes.Buffer
	require.NoError(t, printStatus(&out, runs, t.TempDir(), 5))
	require.Contains(t, out.String(), "No release runs recorded.")

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	old := rundomain.NewRun("run-old", "1.3.0", "/repo", []string{"branch_created"}, now.Add(-time.Hour))
	require.NoError(t, runs.Save(old))

	plan := []string{"branch_created", "changelog_committed", "version_committed(kiln_lib)"}
	run := rundomain.NewRun("run-new", "1.4.0", "/repo", plan, now)
	require.NoError(t, runs.Save(run))
	tr, err := run.Advance("branch_created", "0123456789abcdef0123456789abcdef01234567", now)
	require.NoError(t, err)
	require.NoError(t, runs.AppendTransition(tr))
	require.NoError(t, run.Fail("changelog_committed", errors.New("nothing staged"), now))
	require.NoError(t, runs.Save(run))

	out.Reset()
	require.NoError(t, printStatus(&out, runs, t.TempDir(), 5))
	text := out.String()
	require.Contains(t, text, "run-new")
	require.Contains(t, text, "branch_created")
	require.Contains(t, text, "0123456")
	require.Contains(t, text, "changelog_committed")
	require.Contains(t, text, "nothing staged")
	require.Contains(t, text, "version_committed(kiln_lib)")
	require.Contains(t, text, "Earlier runs")
	require.Contains(t, text, "run-old 1.3.0")
	require.Contains(t, text, "(nothing completed)")
}

// Package cmd implements the kiln-release command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/git/infrastructure"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/paths"
	"github.com/simplybusiness/kiln-release/internal/tracing"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

// appVersion is overridden at build time:
//
//	go build -ldflags "-X github.com/simplybusiness/kiln-release/cmd.appVersion=1.4.0"
var appVersion = "dev"

var (
	cfgFile   string
	logLevel  string
	logFile   string
	traceFile string

	cfg             config.Config
	repoRoot        string
	shutdownTracing tracing.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "kiln-release",
	Short: "Cut signed, tagged and published Kiln releases",
	Long: `kiln-release turns a clean checkout with an updated changelog into a release:
a release branch with one commit per component, a signed tag, container
images, signed tarballs and a draft release with the changelog notes.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default <repo>/"+paths.ConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&traceFile, "trace-file", "", "export pipeline spans to this file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if shutdownTracing != nil {
		if serr := shutdownTracing(context.Background()); serr != nil {
			log.Warn(log.CatPipeline, "Flushing traces failed", "error", serr)
		}
	}
	_ = log.Close()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, styles.FormatError(err))
		os.Exit(1)
	}
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	if err := log.Init(log.Options{
		Level:   logLevel,
		File:    logFile,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}); err != nil {
		return err
	}

	repoRoot = findRoot()
	if cmd == initCmd {
		return nil
	}

	loaded, err := loadConfig(repoRoot, cfgFile)
	if err != nil {
		return err
	}
	if traceFile != "" {
		loaded.Tracing.File = traceFile
	}
	cfg = loaded

	shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing, appVersion)
	if err != nil {
		return err
	}
	shutdownTracing = shutdown
	return nil
}

// findRoot returns the enclosing repository's root, or the working
// directory outside a repository.
func findRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	repo, err := infrastructure.Discover(wd)
	if err != nil {
		return wd
	}
	return repo.Root()
}

func openRepo() (*infrastructure.Repository, error) {
	return infrastructure.Discover(repoRoot)
}

// loadConfig layers the config file and environment over the defaults. A
// missing default config file is not an error; a missing --config file is.
func loadConfig(root, override string) (config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfigTemplate())); err != nil {
		return config.Config{}, fmt.Errorf("reading built-in defaults: %w", err)
	}

	path := paths.ConfigPath(root, override)
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		if override != "" || !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "No config file, using defaults", "path", path)
	} else {
		log.Debug(log.CatConfig, "Loaded config", "path", path)
	}

	v.SetEnvPrefix("KILN_RELEASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range config.EnvKeys {
		if err := v.BindEnv(key); err != nil {
			return config.Config{}, err
		}
	}
	if err := v.BindEnv("publish.token", "KILN_RELEASE_PUBLISH_TOKEN", "GITHUB_PERSONAL_ACCESS_TOKEN"); err != nil {
		return config.Config{}, err
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/infrastructure/sqlite"
	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/paths"
	"github.com/simplybusiness/kiln-release/internal/pipeline"
	"github.com/simplybusiness/kiln-release/internal/publish"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
	"github.com/simplybusiness/kiln-release/internal/ui/prompt"
)

var runYes bool

var runCmd = &cobra.Command{
	Use:   "run <version>",
	Short: "Cut a release",
	Long: `Run the full release for <version> (MAJOR.MINOR.PATCH, optionally "v"-prefixed).

The working copy must be clean apart from the changelog and utils/. After
confirmation this creates release/<version>, commits the changelog and every
component version, pushes a signed v<version> tag, builds and tags images,
packages and signs the tarballs and uploads them to a draft release.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelease,
}

func init() {
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(runCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := openRepo()
	if err != nil {
		return err
	}
	publisher, err := newPublisher(ctx)
	if err != nil {
		return err
	}

	var runs rundomain.RunRepository
	db, err := sqlite.Open(paths.JournalPath(repo.Root()))
	if err != nil {
		log.Warn(log.CatDB, "Run journal unavailable, continuing without it", "error", err)
	} else {
		defer func() { _ = db.Close() }()
		runs = db.Runs()
	}

	p := pipeline.New(cfg, pipeline.Deps{
		Repo:      repo,
		Builder:   newBuilder(),
		Publisher: publisher,
		Runs:      runs,
		Prompter:  prompt.NewTerminal(),
	}, pipeline.Options{AssumeYes: runYes})

	res, err := p.Run(ctx, args[0])
	if err != nil {
		if !errors.Is(err, pipeline.ErrAborted) && res != nil && len(res.Commits) > 0 {
			printResult(cmd.OutOrStdout(), res, false)
		}
		return err
	}
	printResult(cmd.OutOrStdout(), res, true)
	return nil
}

func newBuilder() *build.ExecBuilder {
	return build.NewExecBuilder(
		build.WithCargo(cfg.Build.Cargo),
		build.WithContainerTool(cfg.Build.ContainerTool),
		build.WithLockfileCommand(cfg.Build.LockfileCommand),
	)
}

// newPublisher fails before any mutation when the hosting token is missing.
func newPublisher(ctx context.Context) (*publish.GitHub, error) {
	var opts []publish.GitHubOption
	if cfg.Publish.BaseURL != "" {
		opts = append(opts, publish.WithBaseURL(cfg.Publish.BaseURL, ""))
	}
	return publish.NewGitHub(ctx, cfg.Publish.Repository, cfg.Publish.Token, opts...)
}

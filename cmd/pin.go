package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/build"
	"github.com/simplybusiness/kiln-release/internal/pipeline"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

var (
	pinBranch     string
	pinNoLockfile bool
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Point dependents back at a library branch",
	Long: `Re-pin every service's library dependency to --branch, typically after a
release pinned them to a commit. Only the working copy changes; review and
commit the result yourself.`,
	Args: cobra.NoArgs,
	RunE: runPin,
}

func init() {
	pinCmd.Flags().StringVar(&pinBranch, "branch", "main", "branch to track")
	pinCmd.Flags().BoolVar(&pinNoLockfile, "no-lockfile", false, "skip refreshing lockfiles")
	rootCmd.AddCommand(pinCmd)
}

func runPin(cmd *cobra.Command, _ []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	var b build.Builder
	if !pinNoLockfile {
		b = newBuilder()
	}

	changed, err := pipeline.Repin(cmd.Context(), cfg, repo.Root(), pinBranch, b)
	out := cmd.OutOrStdout()
	for _, path := range changed {
		_, _ = fmt.Fprintln(out, "  "+styles.FormatStep(path, styles.StepDone))
	}
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		_, _ = fmt.Fprintf(out, "All dependents already track %s.\n", pinBranch)
	}
	return nil
}

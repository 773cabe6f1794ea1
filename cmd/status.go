package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/infrastructure/sqlite"
	"github.com/simplybusiness/kiln-release/internal/paths"
	"github.com/simplybusiness/kiln-release/internal/pipeline"
	rundomain "github.com/simplybusiness/kiln-release/internal/runs/domain"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how far recent release runs got",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 5, "number of runs to list")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	db, err := sqlite.Open(paths.JournalPath(repo.Root()))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return printStatus(cmd.OutOrStdout(), db.Runs(), repo.Root(), statusLimit)
}

// printStatus details the newest run step by step and lists older ones on
// a line each.
func printStatus(w io.Writer, runs rundomain.RunRepository, root string, limit int) error {
	latest, err := runs.Latest(limit)
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		_, _ = fmt.Fprintln(w, "No release runs recorded.")
		return nil
	}

	run := latest[0]
	transitions, err := runs.Transitions(run.ID())
	if err != nil {
		return err
	}
	refs := make(map[string]string, len(transitions))
	for _, tr := range transitions {
		refs[tr.Step] = tr.Ref
	}

	_, _ = fmt.Fprintf(w, "%s %s  %s  started %s\n",
		styles.TitleStyle.Render("Run "+run.GUID()),
		run.Version(), run.State(), run.StartedAt().Format("2006-01-02 15:04:05"))
	plan := run.Plan()
	for i, step := range plan {
		switch {
		case i < run.Completed():
			line := styles.FormatStep(step, styles.StepDone)
			if ref := refs[step]; ref != "" {
				line += " " + styles.MutedStyle.Render(shortRef(ref))
			}
			_, _ = fmt.Fprintln(w, "  "+line)
		case step == run.FailedStep():
			_, _ = fmt.Fprintln(w, "  "+styles.FormatStep(step, styles.StepFailed)+" "+run.Failure())
		default:
			_, _ = fmt.Fprintln(w, "  "+styles.FormatStep(step, styles.StepPending))
		}
	}

	rec, err := pipeline.LoadRecord(paths.RecordPath(root, cfg.Project.DistDir, run.Version()))
	if err == nil && rec.RunID == run.GUID() && rec.Release != "" {
		_, _ = fmt.Fprintln(w, "  Draft release: "+rec.Release)
	}

	if len(latest) > 1 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render("Earlier runs"))
		for _, r := range latest[1:] {
			last := r.LastStep()
			if last == "" {
				last = "(nothing completed)"
			}
			_, _ = fmt.Fprintf(w, "  %s %s  %s  last step %s\n", r.GUID(), r.Version(), r.State(), last)
		}
	}
	return nil
}

// shortRef abbreviates commit ids and leaves other references alone.
func shortRef(ref string) string {
	if len(ref) == 40 {
		return ref[:7]
	}
	return ref
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/pipeline"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

var planCmd = &cobra.Command{
	Use:   "plan <version>",
	Short: "Show what a release would do without changing anything",
	Long: `Run the pre-release checks for <version> and print the step plan, the image
tags, the upload set and the manifest edits each commit would make.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	pv, err := pipeline.BuildPreview(cfg, repo, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	latest := pv.Latest
	if latest == "" {
		latest = "(none)"
	}
	summary := strings.Join([]string{
		"Branch:  " + pv.Branch,
		"Tag:     " + pv.Tag,
		"Latest:  " + latest,
		"Aliases: " + strings.Join(pv.Aliases, ", "),
	}, "\n")
	_, _ = fmt.Fprintln(out, styles.RenderPanel(summary, "Plan for "+pv.Version.String(), min(termWidth(), 100)))

	section := func(title string, items []string) {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, styles.TitleStyle.Render(title))
		for _, item := range items {
			_, _ = fmt.Fprintln(out, "  "+styles.FormatStep(item, styles.StepPending))
		}
	}
	section("Steps", pv.Steps)
	section("Images", pv.Images)
	section("Uploads", pv.Assets)

	for _, diff := range pv.Diffs {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, styles.ColorizeDiff(diff))
	}
	return nil
}

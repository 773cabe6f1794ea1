package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/simplybusiness/kiln-release/internal/pipeline"
	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

const defaultWidth = 80

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func colorOutput() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printResult summarizes a run. A partial result lists what was completed
// before the failure so the operator knows what exists remotely.
func printResult(w io.Writer, res *pipeline.Result, complete bool) {
	width := min(termWidth(), 100)

	var lines []string
	lines = append(lines, "Branch:  "+res.Branch)
	if res.Tag != "" {
		lines = append(lines, "Tag:     "+res.Tag)
	}
	lines = append(lines, fmt.Sprintf("Commits: %d", len(res.Commits)))
	for _, img := range res.Images {
		lines = append(lines, "Image:   "+strings.Join(img.Refs, ", "))
	}
	for _, asset := range res.Assets {
		lines = append(lines, "Asset:   "+filepath.Base(asset))
	}
	if res.Release.HTMLURL != "" {
		lines = append(lines, "Draft:   "+res.Release.HTMLURL)
	}
	if res.Record != "" {
		lines = append(lines, "Record:  "+res.Record)
	}

	title := "Released " + res.Version.String()
	if !complete {
		title = "Stopped releasing " + res.Version.String()
	}
	_, _ = fmt.Fprintln(w, styles.RenderPanel(strings.Join(lines, "\n"), title, width))

	if !complete || len(res.Notes) == 0 {
		return
	}
	notes, err := styles.RenderMarkdown(res.Notes.String(), width, colorOutput())
	if err != nil {
		notes = res.Notes.String()
	}
	_, _ = fmt.Fprintln(w, notes)
}

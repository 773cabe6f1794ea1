package styles

import (
	"strings"
)

// Step markers.
const (
	MarkDone    = "✓"
	MarkFailed  = "✗"
	MarkPending = "·"
)

// StepStatus tells FormatStep how to render a step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepDone
	StepFailed
)

// FormatStep renders one plan step with its marker.
func FormatStep(name string, status StepStatus) string {
	switch status {
	case StepDone:
		return SuccessStyle.Render(MarkDone) + " " + TextStyle.Render(name)
	case StepFailed:
		return ErrorStyle.Render(MarkFailed+" "+name)
	default:
		return MutedStyle.Render(MarkPending + " " + name)
	}
}

// FormatError renders an error chain for stderr.
func FormatError(err error) string {
	return ErrorStyle.Render("Error:") + " " + err.Error()
}

// ColorizeDiff styles the lines of a unified-style diff.
func ColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = TitleStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = DiffHunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = DiffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = DiffDelStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

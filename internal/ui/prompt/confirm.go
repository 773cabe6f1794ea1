// Package prompt provides the interactive confirmation and passphrase
// prompts shown before a release mutates anything.
package prompt

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

// ErrCancelled indicates the operator aborted a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// ConfirmModel asks a yes/no question. The default answer is no.
type ConfirmModel struct {
	question  string
	details   string
	answered  bool
	accepted  bool
	cancelled bool
}

// NewConfirm creates a confirmation prompt. details is shown above the
// question and may be empty.
func NewConfirm(question, details string) ConfirmModel {
	return ConfirmModel{question: question, details: details}
}

// Init returns the initial command.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.answered, m.accepted = true, true
		return m, tea.Quit
	case "n", "enter":
		m.answered = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the prompt.
func (m ConfirmModel) View() string {
	if m.answered || m.cancelled {
		return ""
	}
	var b strings.Builder
	if m.details != "" {
		b.WriteString(m.details)
		b.WriteString("\n\n")
	}
	b.WriteString(styles.TitleStyle.Render(m.question))
	b.WriteString(styles.MutedStyle.Render(" [y/N] "))
	return b.String()
}

// Accepted reports whether the operator answered yes.
func (m ConfirmModel) Accepted() bool { return m.accepted }

// Cancelled reports whether the operator aborted the prompt.
func (m ConfirmModel) Cancelled() bool { return m.cancelled }

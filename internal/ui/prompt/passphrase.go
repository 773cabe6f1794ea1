package prompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simplybusiness/kiln-release/internal/ui/styles"
)

// PassphraseModel reads a secret without echoing it.
type PassphraseModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

// NewPassphrase creates a passphrase prompt for keyID.
func NewPassphrase(keyID string) PassphraseModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return PassphraseModel{
		label: fmt.Sprintf("Passphrase for signing key %s: ", keyID),
		input: ti,
	}
}

// Init returns the initial command.
func (m PassphraseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m PassphraseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m PassphraseModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return styles.TitleStyle.Render(m.label) + m.input.View()
}

// Value returns the typed passphrase.
func (m PassphraseModel) Value() string { return m.input.Value() }

// Cancelled reports whether the operator aborted the prompt.
func (m PassphraseModel) Cancelled() bool { return m.cancelled }

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Terminal runs prompts on an input and output stream. Without a TTY on
// In, prompts fall back to reading one line each.
type Terminal struct {
	In  *os.File
	Out io.Writer

	lines *bufio.Reader
}

// NewTerminal prompts on stdin and stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Interactive reports whether In is a terminal.
func (t *Terminal) Interactive() bool {
	return term.IsTerminal(int(t.In.Fd()))
}

// Confirm asks question and returns true only on an explicit yes.
func (t *Terminal) Confirm(question, details string) (bool, error) {
	if !t.Interactive() {
		if details != "" {
			_, _ = fmt.Fprintln(t.Out, details)
		}
		_, _ = fmt.Fprintf(t.Out, "%s [y/N] ", question)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}

	final, err := tea.NewProgram(NewConfirm(question, details), tea.WithInput(t.In), tea.WithOutput(t.Out)).Run()
	if err != nil {
		return false, err
	}
	m := final.(ConfirmModel)
	if m.Cancelled() {
		return false, ErrCancelled
	}
	return m.Accepted(), nil
}

// Passphrase reads the passphrase for keyID. It has the shape of
// integrity.PassphraseFunc.
func (t *Terminal) Passphrase(keyID string) ([]byte, error) {
	if !t.Interactive() {
		_, _ = fmt.Fprintf(t.Out, "Passphrase for signing key %s: ", keyID)
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	final, err := tea.NewProgram(NewPassphrase(keyID), tea.WithInput(t.In), tea.WithOutput(t.Out)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(PassphraseModel)
	if m.Cancelled() {
		return nil, ErrCancelled
	}
	return []byte(m.Value()), nil
}

func (t *Terminal) readLine() (string, error) {
	if t.lines == nil {
		t.lines = bufio.NewReader(t.In)
	}
	line, err := t.lines.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	if err == io.EOF {
		return "", ErrCancelled
	}
	return line, err
}

// Package prompt collects free-text report items from the operator.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/bryan-cox/weeklyreport/internal/styles"
)

// ErrCancelled is returned when the operator aborts the prompt.
var ErrCancelled = errors.New("input cancelled")

// Model is a Bubble Tea model that gathers a list of entries.
// Enter on a non-empty line adds an entry; Enter on an empty line finishes.
type Model struct {
	label     string
	input     textinput.Model
	items     []string
	done      bool
	cancelled bool
}

// NewModel creates a prompt for the given category label.
func NewModel(label string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type an item and press Enter (empty line to finish)"
	ti.CharLimit = 500
	ti.Width = 70
	ti.Focus()

	return Model{
		label: label,
		input: ti,
	}
}

// Items returns the collected entries.
func (m Model) Items() []string {
	return m.items
}

// Done reports whether the operator finished the list.
func (m Model) Done() bool {
	return m.done
}

// Cancelled reports whether the operator aborted.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.done = true
				return m, tea.Quit
			}
			m.items = append(m.items, value)
			m.input.Reset()
			return m, nil

		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.label))
	b.WriteString("\n")
	for _, item := range m.items {
		fmt.Fprintf(&b, "  • %s\n", item)
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("enter: add • empty enter: done • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Collect runs the prompt on the given streams and returns the entries.
func Collect(label string, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(NewModel(label), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.Cancelled() {
		return nil, ErrCancelled
	}
	return m.Items(), nil
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
)

// FileInput is a text input for a file reference.
type FileInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewFileInput creates a new file reference input.
func NewFileInput(s *styles.Styles) *FileInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/file.csv, gdrive://<id> or github://owner/repo/path"
	ti.CharLimit = 1024
	ti.Width = 50

	return &FileInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (f *FileInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *FileInput) Update(msg tea.Msg) (*FileInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the input with its label.
func (f *FileInput) View() string {
	label := f.styles.Subtitle.Render("File: ")
	frame := f.styles.InputField
	if f.textinput.Focused() {
		frame = f.styles.FocusedField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, frame.Render(f.textinput.View()))
}

// Value returns the current input value.
func (f *FileInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FileInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FileInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FileInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FileInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *FileInput) SetWidth(width int) {
	f.width = width
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FileInput) Width() int {
	return f.width
}

// Reset clears the input.
func (f *FileInput) Reset() {
	f.textinput.Reset()
}

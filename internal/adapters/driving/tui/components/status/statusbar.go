// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateUploading State = "uploading"
	StateError     State = "error"
)

// Bar displays application status, the latest notice and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	hints   []key.Binding
	notice  *domain.Notice
	seq     int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.notice != nil {
		return s.renderNotice(*s.notice)
	}

	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateUploading:
		return s.styles.Warning.Render("Uploading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderNotice(n domain.Notice) string {
	style := s.styles.ToastInfo
	switch n.Level {
	case domain.NoticeSuccess:
		style = s.styles.ToastSuccess
	case domain.NoticeError:
		style = s.styles.ToastError
	case domain.NoticeInfo:
	}
	return style.Render(n.String())
}

func (s *Bar) renderRight() string {
	bindings := s.hints
	if bindings == nil {
		bindings = s.keymap.ShortHelp()
	}
	if s.notice != nil && s.notice.Dismissible {
		bindings = append(s.keymap.NoticeHelp(), bindings...)
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// ShowNotice displays a notice and returns its sequence number, which
// identifies it for a later Expire.
func (s *Bar) ShowNotice(n domain.Notice) int {
	s.seq++
	s.notice = &n
	return s.seq
}

// Dismiss hides the current notice if it is dismissible.
func (s *Bar) Dismiss() {
	if s.notice != nil && s.notice.Dismissible {
		s.notice = nil
	}
}

// Expire hides the notice if it is still the one numbered seq.
func (s *Bar) Expire(seq int) {
	if seq == s.seq {
		s.notice = nil
	}
}

// Notice returns the visible notice, if any.
func (s *Bar) Notice() (domain.Notice, bool) {
	if s.notice == nil {
		return domain.Notice{}, false
	}
	return *s.notice, true
}

// SetHints replaces the keybinding hints; nil restores the defaults.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state. The notice is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}

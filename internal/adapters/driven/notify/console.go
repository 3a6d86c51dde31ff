package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure ConsoleNotifier implements the interface.
var _ driven.Notifier = (*ConsoleNotifier)(nil)

// Level markers printed before the title.
const (
	markSuccess = "✓"
	markError   = "✗"
	markInfo    = "•"
)

// ConsoleNotifier writes notices to a terminal or log stream.
type ConsoleNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	message lipgloss.Style
}

// NewConsoleNotifier creates a notifier writing to w.
// Colours are dropped automatically when w is not a terminal.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	r := lipgloss.NewRenderer(w)
	return &ConsoleNotifier{
		w:       w,
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		message: r.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
	}
}

// Notify prints the notice as a single line.
func (n *ConsoleNotifier) Notify(_ context.Context, notice domain.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	line := n.render(notice)
	if _, err := fmt.Fprintln(n.w, line); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	return nil
}

func (n *ConsoleNotifier) render(notice domain.Notice) string {
	var head string
	switch notice.Level {
	case domain.NoticeSuccess:
		head = n.success.Render(markSuccess + " " + notice.Title)
	case domain.NoticeError:
		head = n.failure.Render(markError + " " + notice.Title)
	default:
		head = n.info.Render(markInfo + " " + notice.Title)
	}
	if notice.Message == "" {
		return head
	}
	return head + " " + n.message.Render(notice.Message)
}

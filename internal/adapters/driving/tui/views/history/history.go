// Package history provides the upload history view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// DefaultLimit is the number of records loaded.
const DefaultLimit = 50

// timeLayout formats attempt start times.
const timeLayout = "2006-01-02 15:04:05"

// View lists recent upload attempts.
type View struct {
	styles  *styles.Styles
	history driving.HistoryService
	ctx     context.Context

	records  []domain.UploadRecord
	selected int
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		history: history,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryLoaded{Err: errors.New("upload history not available")}
		}
		records, err := v.history.List(v.ctx, DefaultLimit)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.records = msg.Records
			if v.selected >= len(v.records) {
				v.selected = 0
			}
		}

	case messages.UploadFinished:
		// A new attempt was recorded.
		v.loading = true
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.records)-1 {
				v.selected++
			}
		case "r", "ctrl+r":
			v.loading = true
			return v, v.load()
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
	}
	return v, nil
}

// View renders the history.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Upload History"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.records) == 0:
		b.WriteString(v.styles.Muted.Render("No uploads yet"))
		b.WriteString("\n")
	default:
		v.renderRecords(&b)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [r] Refresh  [esc] Back"))
	return b.String()
}

func (v *View) renderRecords(b *strings.Builder) {
	visible := v.height - 10
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := start + visible
	if end > len(v.records) {
		end = len(v.records)
	}

	for i := start; i < end; i++ {
		r := &v.records[i]
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %-9s  %s -> %s",
			cursor, r.StartedAt.Local().Format(timeLayout), r.Status, r.FileName, r.ObjectAPIName)
		b.WriteString(v.statusStyle(r.Status).Render(line))
		b.WriteString("\n")
	}

	if v.selected < len(v.records) {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(Describe(&v.records[v.selected])))
		b.WriteString("\n")
	}
}

func (v *View) statusStyle(status domain.UploadStatus) lipgloss.Style {
	switch status {
	case domain.UploadSucceeded:
		return v.styles.Success
	case domain.UploadFailed, domain.UploadErrored:
		return v.styles.Error
	}
	return v.styles.Normal
}

// Describe summarises one attempt on a single line.
func Describe(r *domain.UploadRecord) string {
	parts := []string{
		"id " + r.ID,
		fmt.Sprintf("%d rows", r.Rows),
		fmt.Sprintf("%d bytes", r.Bytes),
	}
	if d := r.Duration(); d > 0 {
		parts = append(parts, d.Round(time.Millisecond).String())
	}
	switch r.Status {
	case domain.UploadFailed:
		parts = append(parts, "error location: "+r.ErrorLocation)
	case domain.UploadErrored:
		parts = append(parts, r.Error)
	case domain.UploadSucceeded:
	}
	return strings.Join(parts, " · ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Records returns the loaded records.
func (v *View) Records() []domain.UploadRecord {
	return v.records
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

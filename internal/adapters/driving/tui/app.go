package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// NoticeTTL is how long success and info notices stay visible.
// Error notices stay until dismissed.
const NoticeTTL = 6 * time.Second

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	uploadView  *upload.View
	historyView *history.View
	statusBar   *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, ports.endpoint()),
		uploadView:  upload.NewView(s, ports.Directory, ports.Selection, ports.Upload),
		historyView: history.NewView(s, ports.History),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ingest - CSV Upload"),
		a.waitForNotice(),
	)
}

// waitForNotice blocks on the notice channel and delivers the next notice.
func (a *App) waitForNotice() tea.Cmd {
	ch := a.ports.Notices
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			return messages.NoticeReceived{Notice: n}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// showNotice puts a notice in the status bar and schedules its expiry.
func (a *App) showNotice(n domain.Notice) tea.Cmd {
	seq := a.statusBar.ShowNotice(n)
	if n.Level == domain.NoticeError {
		return nil
	}
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return messages.NoticeExpired{Seq: seq}
	})
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		if keyStr == "ctrl+c" {
			return a, tea.Quit
		}
		if keymap.Matches(keyStr, a.keymap.Dismiss) {
			a.statusBar.Dismiss()
			return a, nil
		}
		return a.updateKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.NoticeReceived:
		return a, tea.Batch(a.showNotice(msg.Notice), a.waitForNotice())

	case messages.NoticeExpired:
		a.statusBar.Expire(msg.Seq)
		return a, nil

	case messages.ConnectorsLoaded, messages.FileAttached:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.err = a.uploadView.Err()
		a.syncStatus()
		return a, cmd

	case messages.UploadFinished:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.err = msg.Err
		a.syncStatus()
		if a.currentView == messages.ViewHistory {
			var hcmd tea.Cmd
			a.historyView, hcmd = a.historyView.Update(msg)
			cmd = tea.Batch(cmd, hcmd)
		}
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.err = a.uploadView.Err()
		a.syncStatus()
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			a.statusBar.SetHints(nil)
		}
	}
	return a, cmd
}

// switchView activates a view and initialises it when needed.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetHints(nil)

	switch view {
	case messages.ViewUpload:
		a.statusBar.SetHints(a.uploadView.HelpBindings())
		a.statusBar.SetState(status.StateLoading)
		return a.uploadView.Init()
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// syncStatus mirrors the upload view's state into the status bar.
func (a *App) syncStatus() {
	switch {
	case a.uploadView.Uploading():
		a.statusBar.SetState(status.StateUploading)
		a.statusBar.SetMessage("Uploading...")
	case a.err != nil:
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.err.Error())
	default:
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage("")
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewUpload:
		body = a.uploadView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewMenu:
		body = a.menuView.View()
	default:
		body = a.menuView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	viewHeight := height - 2
	a.menuView.SetDimensions(width, viewHeight)
	a.uploadView.SetDimensions(width, viewHeight)
	a.historyView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}

// Package upload provides the upload view: connector picker, file input
// and the upload trigger.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// focus identifies which control receives key presses.
type focus int

const (
	focusList focus = iota
	focusFile
)

// View is the upload view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	directory driving.ConnectorDirectory
	selection driving.SelectionState
	upload    driving.UploadService
	ctx       context.Context

	list  *list.ConnectorList
	file  *input.FileInput
	focus focus

	attached  *domain.Blob
	loading   bool
	uploading bool
	last      *domain.UploadRecord
	err       error

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(
	s *styles.Styles,
	directory driving.ConnectorDirectory,
	selection driving.SelectionState,
	upload driving.UploadService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		directory: directory,
		selection: selection,
		upload:    upload,
		ctx:       context.Background(),
		list:      list.NewConnectorList(s),
		file:      input.NewFileInput(s),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the connector directory.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadConnectors()
}

func (v *View) loadConnectors() tea.Cmd {
	return func() tea.Msg {
		if v.directory == nil {
			return messages.ConnectorsLoaded{Err: errors.New("connector directory not available")}
		}
		connectors, err := v.directory.Load(v.ctx)
		return messages.ConnectorsLoaded{Connectors: connectors, Err: err}
	}
}

func (v *View) attach(ref string) tea.Cmd {
	return func() tea.Msg {
		if v.upload == nil {
			return messages.FileAttached{Ref: ref, Err: errors.New("upload service not available")}
		}
		blob, err := v.upload.AttachFile(v.ctx, ref)
		return messages.FileAttached{Ref: ref, Blob: blob, Err: err}
	}
}

func (v *View) submit() tea.Cmd {
	return func() tea.Msg {
		record, err := v.upload.Upload(v.ctx)
		return messages.UploadFinished{Record: record, Err: err}
	}
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConnectorsLoaded:
		v.loading = false
		if msg.Err != nil && len(msg.Connectors) == 0 {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetConnectors(msg.Connectors)
		if v.selection != nil {
			if c, ok := v.selection.Connector(); ok {
				v.list.SetChosen(c.ID)
			}
		}
		return v, nil

	case messages.FileAttached:
		if msg.Err != nil {
			v.err = fmt.Errorf("open %s: %w", msg.Ref, msg.Err)
			return v, nil
		}
		v.err = nil
		v.attached = msg.Blob
		return v, nil

	case messages.UploadFinished:
		v.uploading = false
		v.last = msg.Record
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(keyStr, v.keymap.Focus):
		return v, v.toggleFocus()

	case keymap.Matches(keyStr, v.keymap.Submit):
		if !v.CanUpload() {
			return v, nil
		}
		v.uploading = true
		v.err = nil
		return v, v.submit()

	case keymap.Matches(keyStr, v.keymap.Refresh):
		v.loading = true
		return v, v.loadConnectors()
	}

	if v.focus == focusFile {
		if keymap.Matches(keyStr, v.keymap.Select) {
			ref := strings.TrimSpace(v.file.Value())
			if ref == "" {
				return v, nil
			}
			return v, v.attach(ref)
		}
		var cmd tea.Cmd
		v.file, cmd = v.file.Update(msg)
		return v, cmd
	}

	if keymap.Matches(keyStr, v.keymap.Select) {
		v.chooseCurrent()
		return v, nil
	}
	v.list, _ = v.list.Update(msg)
	return v, nil
}

// chooseCurrent selects the connector under the cursor.
func (v *View) chooseCurrent() {
	current, ok := v.list.Current()
	if !ok || v.selection == nil {
		return
	}
	if err := v.selection.SelectConnector(current.ID); err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.list.SetChosen(current.ID)
}

func (v *View) toggleFocus() tea.Cmd {
	if v.focus == focusList {
		v.focus = focusFile
		return v.file.Focus()
	}
	v.focus = focusList
	v.file.Blur()
	return nil
}

// CanUpload reports whether the upload button is enabled: both selections
// are made and no upload is running.
func (v *View) CanUpload() bool {
	if v.selection == nil || v.upload == nil || v.uploading {
		return false
	}
	return v.selection.CanSubmit() && !v.upload.InFlight()
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Upload"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading connectors..."))
	} else {
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	b.WriteString(v.file.View())
	b.WriteString("\n")
	if v.attached != nil {
		b.WriteString(v.styles.Success.Render(
			fmt.Sprintf("Attached: %s (%d bytes)", v.attached.Name, v.attached.Size())))
	} else {
		b.WriteString(v.styles.Muted.Render("No file attached"))
	}
	b.WriteString("\n\n")

	switch {
	case v.uploading:
		b.WriteString(v.styles.ButtonDisabled.Render("Uploading..."))
	case v.CanUpload():
		b.WriteString(v.styles.Button.Render("Upload"))
		b.WriteString(v.styles.Help.Render("  ctrl+u"))
	default:
		b.WriteString(v.styles.ButtonDisabled.Render("Upload"))
	}
	b.WriteString("\n")

	if line := v.lastLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] Switch focus  [enter] Select/Attach  [ctrl+u] Upload  [ctrl+r] Refresh  [esc] Back"))
	return b.String()
}

func (v *View) lastLine() string {
	if v.last == nil {
		return ""
	}
	switch v.last.Status {
	case domain.UploadSucceeded:
		return v.styles.Success.Render(fmt.Sprintf("Last upload: %s succeeded (%d rows)", v.last.FileName, v.last.Rows))
	case domain.UploadFailed:
		return v.styles.Error.Render(fmt.Sprintf("Last upload: %s failed at %s", v.last.FileName, v.last.ErrorLocation))
	case domain.UploadErrored:
		return v.styles.Error.Render(fmt.Sprintf("Last upload: %s errored", v.last.FileName))
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.file.SetWidth(width)
	listHeight := height - 14
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetSize(width, listHeight)
}

// Uploading reports whether this view started an upload that has not finished.
func (v *View) Uploading() bool {
	return v.uploading
}

// Attached returns the attached file, if any.
func (v *View) Attached() *domain.Blob {
	return v.attached
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// HelpBindings returns the status bar hints for this view.
func (v *View) HelpBindings() []key.Binding {
	return v.keymap.UploadHelp()
}

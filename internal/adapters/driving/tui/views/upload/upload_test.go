package upload

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// MockDirectory implements driving.ConnectorDirectory for testing.
type MockDirectory struct {
	LoadFunc   func(ctx context.Context) ([]domain.Connector, error)
	connectors []domain.Connector
}

func (m *MockDirectory) Load(ctx context.Context) ([]domain.Connector, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return m.connectors, nil
}

func (m *MockDirectory) List() []domain.Connector { return m.connectors }

func (m *MockDirectory) Get(id string) (*domain.Connector, error) {
	for i := range m.connectors {
		if m.connectors[i].ID == id {
			return &m.connectors[i], nil
		}
	}
	return nil, domain.ErrLookup
}

func (m *MockDirectory) Loaded() bool { return m.connectors != nil }

// MockSelection implements driving.SelectionState for testing.
type MockSelection struct {
	directory *MockDirectory
	connector *domain.Connector
	file      *domain.Blob
}

func (m *MockSelection) SelectConnector(id string) error {
	c, err := m.directory.Get(id)
	if err != nil {
		return err
	}
	m.connector = c
	return nil
}

func (m *MockSelection) SelectFile(blob domain.Blob) { m.file = &blob }

func (m *MockSelection) CanSubmit() bool { return m.connector != nil && m.file != nil }

func (m *MockSelection) Connector() (domain.Connector, bool) {
	if m.connector == nil {
		return domain.Connector{}, false
	}
	return *m.connector, true
}

func (m *MockSelection) File() (domain.Blob, bool) {
	if m.file == nil {
		return domain.Blob{}, false
	}
	return *m.file, true
}

func (m *MockSelection) Reset() { m.connector, m.file = nil, nil }

// MockUploadService implements driving.UploadService for testing.
type MockUploadService struct {
	selection      *MockSelection
	AttachFileFunc func(ctx context.Context, ref string) (*domain.Blob, error)
	UploadFunc     func(ctx context.Context) (*domain.UploadRecord, error)
	InFlightValue  bool
	uploads        int
}

func (m *MockUploadService) AttachFile(ctx context.Context, ref string) (*domain.Blob, error) {
	if m.AttachFileFunc != nil {
		return m.AttachFileFunc(ctx, ref)
	}
	blob := domain.Blob{Name: ref, MIMEType: "text/csv", Data: []byte("a,b\n")}
	m.selection.SelectFile(blob)
	return &blob, nil
}

func (m *MockUploadService) Upload(ctx context.Context) (*domain.UploadRecord, error) {
	m.uploads++
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx)
	}
	return &domain.UploadRecord{FileName: "leads.csv", Status: domain.UploadSucceeded, Rows: 2}, nil
}

func (m *MockUploadService) UploadFile(ctx context.Context, _, _ string) (*domain.UploadRecord, error) {
	return m.Upload(ctx)
}

func (m *MockUploadService) InFlight() bool { return m.InFlightValue }

type fixture struct {
	view      *View
	directory *MockDirectory
	selection *MockSelection
	upload    *MockUploadService
}

func newFixture() *fixture {
	directory := &MockDirectory{connectors: []domain.Connector{
		{ID: "0Xk1", Label: "Leads", SourceAPIName: "leads_src", ObjectAPIName: "Lead__dlm"},
		{ID: "0Xk2", Label: "Contacts", SourceAPIName: "contacts_src", ObjectAPIName: "Contact__dlm"},
	}}
	selection := &MockSelection{directory: directory}
	upload := &MockUploadService{selection: selection}
	view := NewView(nil, directory, selection, upload)
	view.SetDimensions(100, 40)
	return &fixture{view: view, directory: directory, selection: selection, upload: upload}
}

// load runs Init and feeds the loaded message back.
func (f *fixture) load(t *testing.T) {
	t.Helper()
	cmd := f.view.Init()
	require.NotNil(t, cmd)
	f.view.Update(cmd())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.False(t, view.CanUpload())
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_InitLoadsConnectors(t *testing.T) {
	f := newFixture()
	f.load(t)

	assert.False(t, f.view.loading)
	assert.Len(t, f.view.list.Connectors(), 2)
	assert.Contains(t, f.view.View(), "Connectors (2)")
}

func TestView_InitLoadError(t *testing.T) {
	f := newFixture()
	f.directory.LoadFunc = func(context.Context) ([]domain.Connector, error) {
		return nil, domain.ErrTransport
	}
	f.load(t)

	assert.ErrorIs(t, f.view.Err(), domain.ErrTransport)
	assert.Contains(t, f.view.View(), "Error:")
}

func TestView_NilDirectory(t *testing.T) {
	view := NewView(nil, nil, nil, nil)
	msg := view.Init()()
	loaded, ok := msg.(messages.ConnectorsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_SelectConnector(t *testing.T) {
	f := newFixture()
	f.load(t)

	f.view.Update(keyMsg("down"))
	f.view.Update(keyMsg("enter"))

	c, ok := f.selection.Connector()
	require.True(t, ok)
	assert.Equal(t, "0Xk2", c.ID)
	assert.Equal(t, "0Xk2", f.view.list.Chosen())
}

func TestView_AttachFile(t *testing.T) {
	f := newFixture()
	f.load(t)

	_, cmd := f.view.Update(keyMsg("tab"))
	assert.NotNil(t, cmd, "focusing the input starts the cursor blink")
	f.view.Update(keyMsg("leads.csv"))
	assert.Equal(t, "leads.csv", f.view.file.Value())

	_, cmd = f.view.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	f.view.Update(cmd())

	require.NotNil(t, f.view.Attached())
	assert.Equal(t, "leads.csv", f.view.Attached().Name)
	assert.Contains(t, f.view.View(), "Attached: leads.csv (4 bytes)")
}

func TestView_AttachEmptyRefIgnored(t *testing.T) {
	f := newFixture()
	f.view.Update(keyMsg("tab"))

	_, cmd := f.view.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestView_AttachError(t *testing.T) {
	f := newFixture()
	f.upload.AttachFileFunc = func(context.Context, string) (*domain.Blob, error) {
		return nil, domain.ErrNotFound
	}
	f.view.Update(keyMsg("tab"))
	f.view.Update(keyMsg("missing.csv"))

	_, cmd := f.view.Update(keyMsg("enter"))
	f.view.Update(cmd())

	assert.ErrorIs(t, f.view.Err(), domain.ErrNotFound)
	assert.Nil(t, f.view.Attached())
}

func TestView_UploadGatedBySelection(t *testing.T) {
	tests := []struct {
		name      string
		connector bool
		file      bool
		inFlight  bool
		want      bool
	}{
		{"nothing selected", false, false, false, false},
		{"connector only", true, false, false, false},
		{"file only", false, true, false, false},
		{"both selected", true, true, false, true},
		{"both selected but in flight", true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.load(t)
			if tt.connector {
				require.NoError(t, f.selection.SelectConnector("0Xk1"))
			}
			if tt.file {
				f.selection.SelectFile(domain.Blob{Name: "a.csv"})
			}
			f.upload.InFlightValue = tt.inFlight

			assert.Equal(t, tt.want, f.view.CanUpload())
			_, cmd := f.view.Update(keyMsg("ctrl+u"))
			assert.Equal(t, tt.want, cmd != nil)
		})
	}
}

func TestView_UploadRunsOnceUntilFinished(t *testing.T) {
	f := newFixture()
	f.load(t)
	require.NoError(t, f.selection.SelectConnector("0Xk1"))
	f.selection.SelectFile(domain.Blob{Name: "leads.csv"})

	_, cmd := f.view.Update(keyMsg("ctrl+u"))
	require.NotNil(t, cmd)
	assert.True(t, f.view.Uploading())
	assert.Contains(t, f.view.View(), "Uploading...")

	_, second := f.view.Update(keyMsg("ctrl+u"))
	assert.Nil(t, second, "button is disabled while uploading")

	f.view.Update(cmd())
	assert.False(t, f.view.Uploading())
	assert.Equal(t, 1, f.upload.uploads)
	assert.Contains(t, f.view.View(), "Last upload: leads.csv succeeded (2 rows)")
	assert.True(t, f.view.CanUpload(), "upload is re-enabled after it finishes")
}

func TestView_UploadLogicalFailure(t *testing.T) {
	f := newFixture()
	f.upload.UploadFunc = func(context.Context) (*domain.UploadRecord, error) {
		return &domain.UploadRecord{FileName: "leads.csv", Status: domain.UploadFailed, ErrorLocation: "Row 4"}, nil
	}
	f.load(t)
	require.NoError(t, f.selection.SelectConnector("0Xk1"))
	f.selection.SelectFile(domain.Blob{Name: "leads.csv"})

	_, cmd := f.view.Update(keyMsg("ctrl+u"))
	f.view.Update(cmd())

	assert.Contains(t, f.view.View(), "failed at Row 4")
	assert.True(t, f.view.CanUpload())
}

func TestView_UploadTransportError(t *testing.T) {
	f := newFixture()
	f.upload.UploadFunc = func(context.Context) (*domain.UploadRecord, error) {
		return &domain.UploadRecord{FileName: "leads.csv", Status: domain.UploadErrored}, domain.ErrTransport
	}
	f.load(t)
	require.NoError(t, f.selection.SelectConnector("0Xk1"))
	f.selection.SelectFile(domain.Blob{Name: "leads.csv"})

	_, cmd := f.view.Update(keyMsg("ctrl+u"))
	f.view.Update(cmd())

	assert.ErrorIs(t, f.view.Err(), domain.ErrTransport)
	assert.Contains(t, f.view.View(), "errored")
	assert.True(t, f.view.CanUpload())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	f := newFixture()

	_, cmd := f.view.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Refresh(t *testing.T) {
	f := newFixture()
	calls := 0
	f.directory.LoadFunc = func(context.Context) ([]domain.Connector, error) {
		calls++
		return f.directory.connectors, nil
	}

	_, cmd := f.view.Update(keyMsg("ctrl+r"))
	require.NotNil(t, cmd)
	assert.Contains(t, f.view.View(), "Loading connectors...")
	f.view.Update(cmd())
	assert.Equal(t, 1, calls)
}

func TestView_KeepsChosenConnectorAcrossReload(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.selection.SelectConnector("0Xk2"))

	f.load(t)
	assert.Equal(t, "0Xk2", f.view.list.Chosen())
}

func TestView_HelpBindings(t *testing.T) {
	assert.NotEmpty(t, newFixture().view.HelpBindings())
}


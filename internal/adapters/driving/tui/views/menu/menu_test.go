package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), "https://ingest.example.com")

	require.NotNil(t, view)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, "")
	assert.NotNil(t, view.styles)
}

func TestView_Init(t *testing.T) {
	assert.Nil(t, NewView(nil, "").Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, "")

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil, "")

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())
	view.Update(runes("j"))
	view.Update(runes("j"))
	view.Update(runes("j"))
	assert.Equal(t, 3, view.Selected(), "stops at the last item")

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(runes("k"))
	view.Update(runes("k"))
	view.Update(runes("k"))
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterChangesView(t *testing.T) {
	tests := []struct {
		downs int
		want  messages.ViewType
	}{
		{0, messages.ViewUpload},
		{1, messages.ViewHistory},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil, "")
			for i := 0; i < tt.downs; i++ {
				view.Update(tea.KeyMsg{Type: tea.KeyDown})
			}

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Update_Shortcuts(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(runes("u"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewUpload}, cmd())

	_, cmd = view.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Update_QuitItem(t *testing.T) {
	view := NewView(nil, "")
	view.selected = 3

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, "https://ingest.example.com")
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(100, 40)
	out := view.View()
	assert.Contains(t, out, "Ingest")
	assert.Contains(t, out, "Endpoint: https://ingest.example.com")
	assert.Contains(t, out, "> Upload")
	assert.Contains(t, out, "History")
}

func TestView_View_NoEndpoint(t *testing.T) {
	view := NewView(nil, "")
	view.SetDimensions(100, 40)
	assert.Contains(t, view.View(), "No endpoint configured")
}

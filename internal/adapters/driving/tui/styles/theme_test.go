package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
	assert.NotEmpty(t, string(theme.Bar))
}

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	palette := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range palette {
		s := string(c)
		assert.False(t, seen[s], "duplicate colour: %s", s)
		seen[s] = true
	}
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestDefaultStyles_Render(t *testing.T) {
	styles := DefaultStyles()

	assert.Contains(t, styles.Title.Render("Upload"), "Upload")
	assert.Contains(t, styles.Button.Render("Upload"), "Upload")
	assert.Contains(t, styles.ButtonDisabled.Render("Upload"), "Upload")
	assert.Contains(t, styles.ToastSuccess.Render("Upload complete"), "Upload complete")
	assert.Contains(t, styles.ToastError.Render("Error"), "Error")
	assert.Contains(t, styles.ToastInfo.Render("Info"), "Info")
}

func TestFocusedField_DiffersFromInputField(t *testing.T) {
	styles := DefaultStyles()

	assert.NotEqual(t,
		styles.InputField.GetBorderTopForeground(),
		styles.FocusedField.GetBorderTopForeground())
}

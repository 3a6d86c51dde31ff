// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// ConnectorList displays the connector directory in a navigable list.
// The cursor and the chosen connector are tracked separately.
type ConnectorList struct {
	connectors []domain.Connector
	cursor     int
	chosenID   string
	styles     *styles.Styles
	width      int
	height     int
}

// NewConnectorList creates a new connector list component.
func NewConnectorList(s *styles.Styles) *ConnectorList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ConnectorList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (c *ConnectorList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *ConnectorList) Update(msg tea.Msg) (*ConnectorList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the list.
func (c *ConnectorList) View() string {
	if len(c.connectors) == 0 {
		return c.styles.Muted.Render("No connectors")
	}

	lines := make([]string, 0, len(c.connectors)+2)
	lines = append(lines, c.styles.Subtitle.Render(fmt.Sprintf("Connectors (%d)", len(c.connectors))), "")

	visible := c.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	end := start + visible
	if end > len(c.connectors) {
		end = len(c.connectors)
	}

	for i := start; i < end; i++ {
		lines = append(lines, c.renderConnector(i, &c.connectors[i]))
	}
	return strings.Join(lines, "\n")
}

func (c *ConnectorList) renderConnector(index int, conn *domain.Connector) string {
	indicator := "  "
	if index == c.cursor {
		indicator = "> "
	}
	mark := "( )"
	if conn.ID == c.chosenID {
		mark = "(•)"
	}

	label := conn.DisplayName()
	maxLen := c.width - 30
	if maxLen < 10 {
		maxLen = 10
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s %s", indicator, mark, label)
	detail := c.styles.Muted.Render(" " + conn.ObjectAPIName)
	if index == c.cursor {
		return c.styles.Selected.Render(line) + detail
	}
	return c.styles.Normal.Render(line) + detail
}

// SetConnectors replaces the list contents and clamps the cursor.
func (c *ConnectorList) SetConnectors(connectors []domain.Connector) {
	c.connectors = connectors
	if c.cursor >= len(connectors) {
		c.cursor = 0
	}
}

// Connectors returns the list contents.
func (c *ConnectorList) Connectors() []domain.Connector {
	return c.connectors
}

// Current returns the connector under the cursor.
func (c *ConnectorList) Current() (domain.Connector, bool) {
	if c.cursor < 0 || c.cursor >= len(c.connectors) {
		return domain.Connector{}, false
	}
	return c.connectors[c.cursor], true
}

// SetChosen marks the connector with id as chosen.
func (c *ConnectorList) SetChosen(id string) {
	c.chosenID = id
}

// Chosen returns the chosen connector ID.
func (c *ConnectorList) Chosen() string {
	return c.chosenID
}

// Cursor returns the cursor index.
func (c *ConnectorList) Cursor() int {
	return c.cursor
}

// MoveUp moves the cursor up.
func (c *ConnectorList) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down.
func (c *ConnectorList) MoveDown() {
	if c.cursor < len(c.connectors)-1 {
		c.cursor++
	}
}

// SetSize sets the list dimensions.
func (c *ConnectorList) SetSize(width, height int) {
	c.width = width
	c.height = height
}

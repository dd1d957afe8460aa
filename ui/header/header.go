// Package header renders the one-line top bar: app title, the year under the
// viewport, and the entry count.
package header

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gamecal/gamecal/style"
)

// Model holds the state for the compact TUI header.
type Model struct {
	version string
	year    string
	entries int
	width   int
}

// New returns a Model with the default version string.
func New() Model {
	return Model{version: "v0.3.1"}
}

// SetYear updates the year label shown for the current viewport position.
func (m *Model) SetYear(y string) { m.year = y }

// SetEntries updates the displayed entry count.
func (m *Model) SetEntries(n int) { m.entries = n }

// SetWidth updates the terminal width used for separator sizing.
func (m *Model) SetWidth(w int) { m.width = w }

// Version returns the app version string.
func (m Model) Version() string { return m.version }

// View returns the compact one-line header.
func (m Model) View() string {
	title := style.ApplyBoldForegroundGrad("gamecal")
	sep := style.HeaderSeparator.Render(" · ")
	ver := style.HeaderVersion.Render(m.version)

	line := title + " " + ver
	if m.year != "" {
		line += sep + style.HeaderYear.Render(m.year)
	}
	if m.entries > 0 {
		line += sep + style.HeaderVersion.Render(fmt.Sprintf("%d releases", m.entries))
	}
	return line
}

// HeaderView returns the compact header plus a thin separator line.
func (m Model) HeaderView() string {
	w := m.width
	if w < 0 {
		w = 0
	}
	rule := lipgloss.NewStyle().Foreground(style.Border).Render(strings.Repeat("─", w))
	return m.View() + "\n" + rule
}
